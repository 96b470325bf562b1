package scope

import "go.uber.org/zap"

// updateUnit applies one Update and renders if the component asks to.
type updateUnit[P, M any] struct {
	state  *cell[P, M]
	update Update[P, M]
}

func (u *updateUnit[P, M]) Run() {
	u.state.withState("scope.update", func(st *componentState[P, M]) {
		if st.apply(u.update) {
			st.render()
		}
	})
}

// renderedUnit fires the post-render hook once per render cycle.
type renderedUnit[P, M any] struct {
	state       *cell[P, M]
	firstRender bool
}

func (u *renderedUnit[P, M]) Run() {
	u.state.withState("scope.rendered", func(st *componentState[P, M]) {
		if st.rendered {
			return
		}
		st.rendered = true
		st.component.Rendered(u.firstRender)
	})
}

// destroyUnit empties the cell for good and tears the component down.
type destroyUnit[P, M any] struct {
	state *cell[P, M]
}

func (u *destroyUnit[P, M]) Run() {
	c := u.state
	c.borrow("scope.destroy", func(st *componentState[P, M]) {
		if st == nil {
			return
		}
		c.state = nil
		st.component.Teardown()
		if st.lastRoot != nil {
			st.lastRoot.Detach(st.anchor)
			st.lastRoot = nil
		}
		Logger().Debug("component destroyed",
			zap.String("kind", c.name),
			zap.Uint64("component", uint64(c.id)))
	})
}
