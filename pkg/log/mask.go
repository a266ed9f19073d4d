package log

// MaskedArg replaces secret arguments in command events.
const MaskedArg = "******"

// secretCommands lists commands whose arguments must never be logged.
var secretCommands = map[string]bool{
	"password": true,
}

// CommandArgs returns args safe for logging: arguments of secret commands
// are replaced with MaskedArg.
func CommandArgs(name string, args []string) []string {
	if len(args) == 0 {
		return nil
	}
	out := make([]string, len(args))
	if secretCommands[name] {
		for i := range out {
			out[i] = MaskedArg
		}
		return out
	}
	copy(out, args)
	return out
}
