package tensor

// Init performs library-wide startup. It is a no-op today — no backend
// this module ships needs any setup — but programs that may
// later run against a distributed backend requiring collective setup should
// call it before building any tensor, and Finalize before exit.
func Init(argc int, argv []string) int { return 0 }

// Finalize performs library-wide shutdown. See Init.
func Finalize() {}
