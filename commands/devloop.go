package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rpnesseling/adbw/adb"
	"github.com/rpnesseling/adbw/store"
	"github.com/rpnesseling/adbw/utils"
)

const watchDebounce = 500 * time.Millisecond

// DevLoopOptions configures one dev-loop run. Flag values override the
// profile's fields.
type DevLoopOptions struct {
	Device   string
	Profile  string
	Package  string
	Activity string
	APKPath  string
	Tag      string
	Watch    bool
}

func (o DevLoopOptions) merged(stores *store.Store) (store.Profile, error) {
	var p store.Profile
	if o.Profile != "" {
		loaded, err := stores.Profile(o.Profile)
		if err != nil {
			return p, err
		}
		p = *loaded
	}
	if o.Package != "" {
		p.Package = o.Package
	}
	if o.Activity != "" {
		p.Activity = o.Activity
	}
	if o.APKPath != "" {
		p.APKPath = o.APKPath
	}
	if o.Tag != "" {
		p.LogTag = o.Tag
	}
	return p, nil
}

// DevLoopCommand runs the edit-install-launch-log cycle: install the APK
// when one is configured, clear app data, launch, then tail the filtered
// logcat until ctx is cancelled. With Watch, changes to the APK re-run the
// cycle and restart the tail.
func DevLoopCommand(ctx context.Context, opts DevLoopOptions, w io.Writer) error {
	exec, err := Exec()
	if err != nil {
		return err
	}
	dev, err := ResolveDevice(ctx, opts.Device)
	if err != nil {
		return err
	}

	profile, err := opts.merged(stores)
	if err != nil {
		return err
	}
	if profile.Package == "" {
		return fmt.Errorf("a package is required, set one in the profile or pass --package")
	}

	tag := profile.LogTag
	if tag == "" {
		tag = conf.DefaultLogTag
	}

	cycle := func() error {
		if profile.APKPath != "" {
			utils.Info("Installing %s...", profile.APKPath)
			if _, err := exec.Install(ctx, dev.Serial, profile.APKPath, adb.InstallOptions{Replace: true}); err != nil {
				return fmt.Errorf("install failed: %v", err)
			}
		}
		if err := exec.ClearData(ctx, dev.Serial, profile.Package); err != nil {
			return fmt.Errorf("clear data failed: %v", err)
		}
		if err := exec.Launch(ctx, dev.Serial, profile.Package, profile.Activity); err != nil {
			return fmt.Errorf("launch failed: %v", err)
		}
		utils.Info("Launched %s, tailing %s:I", profile.Package, tag)
		return nil
	}

	if err := cycle(); err != nil {
		return err
	}

	if !opts.Watch {
		return exec.LogcatTailFiltered(ctx, dev.Serial, tag, "I", w)
	}

	if profile.APKPath == "" {
		return fmt.Errorf("--watch needs an APK path to watch, set one in the profile or pass --apk")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %v", err)
	}
	defer watcher.Close()

	// watch the directory: editors and build tools replace files instead of
	// writing them in place
	apkPath, err := filepath.Abs(profile.APKPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(apkPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %v", filepath.Dir(apkPath), err)
	}
	utils.Info("Watching %s for changes", apkPath)

	tailCtx, tailCancel := context.WithCancel(ctx)
	startTail := func() {
		go func(c context.Context) {
			if err := exec.LogcatTailFiltered(c, dev.Serial, tag, "I", w); err != nil && ctx.Err() == nil {
				utils.Warn("Log tail stopped: %v", err)
			}
		}(tailCtx)
	}
	startTail()

	var rebuild <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			tailCancel()
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				tailCancel()
				return nil
			}
			if filepath.Clean(ev.Name) != apkPath {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				rebuild = time.After(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				tailCancel()
				return nil
			}
			utils.Warn("Watcher error: %v", err)

		case <-rebuild:
			rebuild = nil
			utils.Info("APK changed, re-running the cycle")
			tailCancel()
			if err := cycle(); err != nil {
				utils.Warn("%v", err)
			}
			tailCtx, tailCancel = context.WithCancel(ctx)
			startTail()
		}
	}
}
