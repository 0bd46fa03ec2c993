package greeting

// DefaultName is greeted when the caller does not supply one.
const DefaultName = "Hono"

// Message builds the greeting text for name.
func Message(name string) string {
	if name == "" {
		name = DefaultName
	}
	return "Hello " + name + "!"
}
