package viz

import (
	"log"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/san-kum/griddlepan/internal/config"
)

// ConfigWatcher re-reads a config file whenever it changes and sends the
// result as a ConfigReloadMsg.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	send    func(tea.Msg)

	closeCh chan struct{}
	wg      sync.WaitGroup
}

// WatchConfig watches the directory holding path, so editors that replace
// the file on save are still seen.
func WatchConfig(path string, send func(tea.Msg)) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &ConfigWatcher{
		watcher: fsw,
		path:    abs,
		send:    send,
		closeCh: make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

func (w *ConfigWatcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := config.Load(w.path)
			w.send(ConfigReloadMsg{Config: cfg, Err: err})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config watch: %v", err)
		}
	}
}

func (w *ConfigWatcher) Close() error {
	close(w.closeCh)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
