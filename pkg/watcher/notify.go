package watcher

// Notification is the set of callbacks a Notifier delivers events to.
type Notification interface {
	WatcherItemDidChange(string)
	WatcherDidError(error)
}

// Notifier watches files and reports changes to a Notification.
type Notifier interface {
	Start(Notification)
	Add(string) error
	Shutdown()
}
