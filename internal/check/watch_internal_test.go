package check

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/temirov/depdoc/internal/reconcile"
)

const (
	watchTestDebounceIntervalConstant = 20 * time.Millisecond
	watchTestTimeoutConstant          = 5 * time.Second
	watchTestPollIntervalConstant     = 10 * time.Millisecond
	watchTestPassingDocumentConstant  = "[[dependency]]\nname = \"lodash\"\npurpose = \"Utility lib\"\nscope = \"prod\"\n"
	watchTestFailingDocumentConstant  = "[[dependency]]\nname = \"lodash\"\npurpose = \"Utility lib\"\nscope = \"dev\"\n"
)

type lockedBuffer struct {
	mutex  sync.Mutex
	buffer bytes.Buffer
}

func (buffer *lockedBuffer) Write(data []byte) (int, error) {
	buffer.mutex.Lock()
	defer buffer.mutex.Unlock()
	return buffer.buffer.Write(data)
}

func (buffer *lockedBuffer) String() string {
	buffer.mutex.Lock()
	defer buffer.mutex.Unlock()
	return buffer.buffer.String()
}

func TestServiceWatchRechecksOnDocumentationChange(testInstance *testing.T) {
	defer goleak.VerifyNone(testInstance)

	projectDirectory := testInstance.TempDir()
	documentationPath := filepath.Join(projectDirectory, "dep-doc.toml")
	require.NoError(testInstance, os.WriteFile(filepath.Join(projectDirectory, "package.json"), []byte(`{"dependencies":{"lodash":"4"}}`), 0o600))
	require.NoError(testInstance, os.WriteFile(documentationPath, []byte(watchTestPassingDocumentConstant), 0o600))

	outputBuffer := &lockedBuffer{}
	errorBuffer := &lockedBuffer{}
	var runCountMutex sync.Mutex
	runCount := 0

	service := NewService(reconcile.NewReconciler(nil, nil), nil, outputBuffer, errorBuffer, zap.NewNop())
	service.watchTiming = watchTiming{
		debounceInterval: watchTestDebounceIntervalConstant,
		afterRun: func() {
			runCountMutex.Lock()
			runCount++
			runCountMutex.Unlock()
		},
	}
	completedRuns := func() int {
		runCountMutex.Lock()
		defer runCountMutex.Unlock()
		return runCount
	}

	executionContext, cancel := context.WithCancel(context.Background())
	defer cancel()

	runResult := make(chan error, 1)
	go func() {
		runResult <- service.Run(executionContext, Options{Roots: []string{projectDirectory}, Color: ColorModeNever, Watch: true})
	}()

	require.Eventually(testInstance, func() bool { return completedRuns() >= 1 }, watchTestTimeoutConstant, watchTestPollIntervalConstant)
	require.Equal(testInstance, "🎖️ Success! dep-doc valid (package.json)\n", outputBuffer.String())

	require.NoError(testInstance, os.WriteFile(filepath.Join(projectDirectory, "notes.txt"), []byte("ignored"), 0o600))
	require.NoError(testInstance, os.WriteFile(documentationPath, []byte(watchTestFailingDocumentConstant), 0o600))

	require.Eventually(testInstance, func() bool {
		return strings.Contains(errorBuffer.String(), "    - lodash: dep-doc.toml=dev, manifest=prod")
	}, watchTestTimeoutConstant, watchTestPollIntervalConstant)

	cancel()
	select {
	case runError := <-runResult:
		require.NoError(testInstance, runError)
	case <-time.After(watchTestTimeoutConstant):
		testInstance.Fatal("watch loop did not stop after cancellation")
	}
}

func TestServiceWatchFailsForMissingRoot(testInstance *testing.T) {
	defer goleak.VerifyNone(testInstance)

	service := NewService(nil, nil, nil, nil, nil)
	runError := service.Run(context.Background(), Options{Roots: []string{filepath.Join(testInstance.TempDir(), "missing")}, Watch: true})
	require.Error(testInstance, runError)
	require.Contains(testInstance, runError.Error(), "unable to watch")
}

func TestIsRelevantEvent(testInstance *testing.T) {
	testCases := []struct {
		name     string
		event    fsnotify.Event
		relevant bool
	}{
		{name: "documentation_write", event: fsnotify.Event{Name: "/p/dep-doc.toml", Op: fsnotify.Write}, relevant: true},
		{name: "package_json_create", event: fsnotify.Event{Name: "/p/package.json", Op: fsnotify.Create}, relevant: true},
		{name: "cargo_rename", event: fsnotify.Event{Name: "/p/Cargo.toml", Op: fsnotify.Rename}, relevant: true},
		{name: "manifest_remove", event: fsnotify.Event{Name: "/p/Cargo.toml", Op: fsnotify.Remove}, relevant: true},
		{name: "chmod_ignored", event: fsnotify.Event{Name: "/p/dep-doc.toml", Op: fsnotify.Chmod}, relevant: false},
		{name: "other_file_ignored", event: fsnotify.Event{Name: "/p/README.md", Op: fsnotify.Write}, relevant: false},
		{name: "lockfile_ignored", event: fsnotify.Event{Name: "/p/Cargo.lock", Op: fsnotify.Write}, relevant: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.relevant, isRelevantEvent(testCase.event))
		})
	}
}
