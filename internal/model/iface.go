package model

// KVBackend is the raw persistent key/value storage behind the preference store.
// Get returns found=false, err=nil for a missing key.
type KVBackend interface {
	GetPref(key string) (value string, found bool, err error)
	SetPref(key, value string) error
	DeletePref(key string) error
	ClearPrefs() error
}

// Publisher emits section-changed signals.
type Publisher interface {
	Publish(ev SectionChanged)
}

// Notifier surfaces transient user-facing messages.
type Notifier interface {
	Info(msg string)
	Success(msg string)
	Warning(msg string)
	Danger(msg string)
}
