package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// File is a file-based Notifier. Files are watched through their parent
// directory so that editors and secret managers which replace the file
// (write to a temp file, then rename) are still seen.
type File struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	shutdown chan struct{}
}

func NewFile() (*File, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &File{
		watcher:  w,
		files:    make(map[string]struct{}),
		shutdown: make(chan struct{}),
	}, nil
}

// Add must be called before Start.
func (f *File) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	f.files[abs] = struct{}{}
	return f.watcher.Add(filepath.Dir(abs))
}

// Shutdown stops Start and releases the watcher.
func (f *File) Shutdown() {
	select {
	case <-f.shutdown:
	default:
		close(f.shutdown)
		_ = f.watcher.Close()
	}
}

// Start blocks, delivering events on the added files to n until Shutdown.
func (f *File) Start(n Notification) {
	for {
		select {
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if _, watched := f.files[filepath.Clean(event.Name)]; !watched {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				n.WatcherItemDidChange(event.Name)
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			n.WatcherDidError(err)
		case <-f.shutdown:
			return
		}
	}
}
