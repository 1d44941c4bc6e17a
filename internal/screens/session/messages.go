package session

// persistedMsg is sent when the finished session has been written to the
// store.
type persistedMsg struct {
	BestScore int
	Err       error
}
