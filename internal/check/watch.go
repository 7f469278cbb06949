package check

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/temirov/depdoc/internal/shared"
)

const (
	defaultDebounceIntervalConstant      = 150 * time.Millisecond
	watcherCreationErrorTemplateConstant = "unable to start watcher: %w"
	watchRootErrorTemplateConstant       = "unable to watch %s: %w"
	logMessageWatchStartedConstant       = "watching project roots for changes"
	logMessageWatchStoppedConstant       = "stopped watching project roots"
	logMessageChangeDetectedConstant     = "change detected"
	logMessageWatcherErrorConstant       = "file watcher reported an error"
	logFieldPathConstant                 = "path"
	logFieldOperationConstant            = "operation"
)

type watchTiming struct {
	debounceInterval time.Duration
	afterRun         func()
}

func defaultWatchTiming() watchTiming {
	return watchTiming{debounceInterval: defaultDebounceIntervalConstant}
}

// watch renders an initial report, then re-checks every root after a burst of
// relevant file events settles. Audit failures never stop the loop.
func (service *Service) watch(executionContext context.Context, roots []string, renderer reportRenderer) error {
	watcher, watcherError := fsnotify.NewWatcher()
	if watcherError != nil {
		return fmt.Errorf(watcherCreationErrorTemplateConstant, watcherError)
	}
	defer watcher.Close()

	for _, root := range roots {
		if addError := watcher.Add(root); addError != nil {
			return fmt.Errorf(watchRootErrorTemplateConstant, root, addError)
		}
	}

	if runError := service.rerun(roots, renderer); runError != nil {
		return runError
	}
	service.logger.Info(logMessageWatchStartedConstant, zap.Strings(logFieldRootConstant, roots))

	debounceTimer := time.NewTimer(service.watchTiming.debounceInterval)
	debounceTimer.Stop()
	defer debounceTimer.Stop()

	for {
		select {
		case <-executionContext.Done():
			service.logger.Info(logMessageWatchStoppedConstant)
			return nil
		case event, eventsOpen := <-watcher.Events:
			if !eventsOpen {
				return nil
			}
			if !isRelevantEvent(event) {
				continue
			}
			service.logger.Debug(logMessageChangeDetectedConstant, zap.String(logFieldPathConstant, event.Name), zap.String(logFieldOperationConstant, event.Op.String()))
			debounceTimer.Reset(service.watchTiming.debounceInterval)
		case watchError, errorsOpen := <-watcher.Errors:
			if !errorsOpen {
				return nil
			}
			service.logger.Warn(logMessageWatcherErrorConstant, zap.Error(watchError))
		case <-debounceTimer.C:
			if runError := service.rerun(roots, renderer); runError != nil {
				return runError
			}
		}
	}
}

func (service *Service) rerun(roots []string, renderer reportRenderer) error {
	runError := service.checkAndRender(roots, renderer)
	if service.watchTiming.afterRun != nil {
		service.watchTiming.afterRun()
	}
	if runError != nil && !errors.Is(runError, ErrCheckFailed) {
		return runError
	}
	return nil
}

func isRelevantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	fileName := filepath.Base(event.Name)
	return fileName == shared.DocumentationFileNameConstant || shared.IsManifestFileName(fileName)
}
