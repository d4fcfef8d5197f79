package model

// FileChange represents a single rewrite of a file, applied or pending.
type FileChange struct {
	Path     string
	Original string
	Updated  string
	// Description names what the rule updated, e.g. "imports in".
	Description string
}

// Summary holds the results of a rewrite pass for display.
type Summary struct {
	Scanned int
	Updated []string
	Failed  []string
	DryRun  bool
	Message string
}
