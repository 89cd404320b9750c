package runtime

// Must panics if err is non-nil. Used for startup-time operations
// that cannot meaningfully be recovered from.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
