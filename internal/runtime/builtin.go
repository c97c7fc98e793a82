package runtime

// globals lists the constants every root scope starts with.
var globals = []struct {
	name  string
	value Value
}{
	{"true", Boolean(true)},
	{"false", Boolean(false)},
	{"nil", Nil()},
}

// registerGlobals binds the built-in constants in env.
func registerGlobals(env *Environment) {
	for _, g := range globals {
		// A fresh scope has no bindings, so this cannot conflict.
		_, _ = env.DeclareVar(g.name, g.value, true, false)
	}
}
