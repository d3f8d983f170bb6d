package variant

// Registry is the set of built-in variants, keyed by name, a table-driven
// lookup so a single assembler serves any of them. Orthodox chess is fully
// wired end to end; the rest
// are sketched (board geometry, piece atoms, starting FEN) to demonstrate
// the Config shape scales to them, without the full eval/search tuning a
// production release of each would need.
var Registry = map[string]func() *Config{
	"orthodox": Orthodox,
	"xiangqi":  Xiangqi,
	"shogi":    Shogi,
	"makruk":   Makruk,
	"capablanca": Capablanca,
	"seirawan":   Seirawan,
	"crazyhouse": Crazyhouse,
}

// Names lists every registered variant name.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for n := range Registry {
		names = append(names, n)
	}
	return names
}

// Lookup builds the Config for a registered variant name, or reports ok=false.
func Lookup(name string) (*Config, bool) {
	f, ok := Registry[name]
	if !ok {
		return nil, false
	}
	return f(), true
}
