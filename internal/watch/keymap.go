package watch

// Key binding constants used in handleKey.
const (
	KeyQuit        = "q"
	KeyQuitUpper   = "Q"
	KeyCtrlC       = "ctrl+c"
	KeySpace       = " "
	KeyRecord      = "r"
	KeyRecordUpper = "R"
	KeyRefresh     = "f"
)
