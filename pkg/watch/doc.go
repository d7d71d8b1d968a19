// Package watch reports changes to expression files.
//
// A Watcher wraps fsnotify. Rapid writes are collapsed by a Debouncer so an
// editor save that touches a file several times produces one callback:
//
//	w, err := watch.New(watch.FromConfig(cfg.Watch, "exprs/"), logger)
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//
//	err = w.Watch(ctx, func(paths []string) error {
//	    for _, p := range paths {
//	        // re-evaluate p
//	    }
//	    return nil
//	})
package watch
