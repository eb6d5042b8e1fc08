package authsdk

// State names a position in the client auth lifecycle.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
	StateErrored        State = "errored"
)

// Snapshot is an immutable view of the controller's state. User and
// Session are non-nil only in StateAuthenticated; Err is non-nil only
// in StateErrored.
type Snapshot struct {
	State   State
	User    *User
	Session *Session
	Err     error
}

// Authenticated reports whether the snapshot carries a live identity.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated
}

// event is a state machine input. Events are produced by controller
// operations and consumed only by reduce.
type event interface{ isEvent() }

type evAttemptStarted struct{}

type evAttemptSucceeded struct {
	user    *User
	session *Session
}

type evAttemptFailed struct{ err error }

type evSessionRenewed struct {
	user    *User
	session *Session
}

type evSignedOut struct{}

func (evAttemptStarted) isEvent()   {}
func (evAttemptSucceeded) isEvent() {}
func (evAttemptFailed) isEvent()    {}
func (evSessionRenewed) isEvent()   {}
func (evSignedOut) isEvent()        {}

// reduce is the pure transition function. Unexpected events leave the
// state unchanged rather than panicking, so a late async result cannot
// corrupt the machine.
func reduce(s Snapshot, ev event) Snapshot {
	switch ev := ev.(type) {
	case evAttemptStarted:
		return Snapshot{State: StateAuthenticating}

	case evAttemptSucceeded:
		if s.State != StateAuthenticating {
			return s
		}
		return Snapshot{State: StateAuthenticated, User: ev.user, Session: ev.session}

	case evAttemptFailed:
		if s.State != StateAuthenticating {
			return s
		}
		return Snapshot{State: StateErrored, Err: ev.err}

	case evSessionRenewed:
		if s.State != StateAuthenticated {
			return s
		}
		user := ev.user
		if user == nil {
			user = s.User
		}
		return Snapshot{State: StateAuthenticated, User: user, Session: ev.session}

	case evSignedOut:
		return Snapshot{State: StateAnonymous}
	}
	return s
}
