package reconcile

import (
	"go.uber.org/zap"

	"github.com/temirov/depdoc/internal/depdoc"
	"github.com/temirov/depdoc/internal/filesystem"
	"github.com/temirov/depdoc/internal/manifest"
	"github.com/temirov/depdoc/internal/shared"
)

const (
	logMessageManifestDetectedConstant       = "manifest detected"
	logMessageDocumentationLoadedConstant    = "dependency documentation loaded"
	logMessageInventoryLoadedConstant        = "manifest inventory loaded"
	logMessageReconciliationFailedConstant   = "dependency documentation check failed"
	logMessageReconciliationFinishedConstant = "dependency documentation check finished"
	logFieldBaseDirectoryConstant            = "base_directory"
	logFieldLabelConstant                    = "manifest"
	logFieldStageConstant                    = "stage"
	logFieldDocumentedCountConstant          = "documented_count"
	logFieldManifestCountConstant            = "manifest_count"
	logFieldMissingCountConstant             = "missing_count"
	logFieldExtraCountConstant               = "extra_count"
	logFieldScopeMismatchCountConstant       = "scope_mismatch_count"
	logFieldOKConstant                       = "ok"
	stageDetectionConstant                   = "detection"
	stageDocumentationConstant               = "documentation"
	stageManifestConstant                    = "manifest"
)

// DocumentationLoader loads the documentation file for a project directory.
type DocumentationLoader interface {
	Load(baseDirectory string) (depdoc.Documentation, error)
}

// Reconciler orchestrates detection, loading, and the three-way diff.
type Reconciler struct {
	detector            *manifest.Detector
	documentationLoader DocumentationLoader
	manifestReaders     map[shared.ManifestLabel]manifest.Reader
	logger              *zap.Logger
}

// NewReconciler builds a Reconciler reading through fileSystem. A nil logger disables diagnostics.
func NewReconciler(fileSystem shared.FileSystem, logger *zap.Logger) *Reconciler {
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		detector:            manifest.NewDetector(fileSystem),
		documentationLoader: depdoc.NewLoader(fileSystem),
		manifestReaders:     manifest.NewReaders(fileSystem),
		logger:              logger,
	}
}

// Check runs the audit against the operating system file system.
func Check(baseDirectory string) Verdict {
	return NewReconciler(filesystem.OSFileSystem{}, nil).Check(baseDirectory)
}

// Check audits baseDirectory and returns the verdict. Failures of any stage land
// in Verdict.Errors.
func (reconciler *Reconciler) Check(baseDirectory string) Verdict {
	label, detectionError := reconciler.detector.Detect(baseDirectory)
	if detectionError != nil {
		return reconciler.fail(baseDirectory, stageDetectionConstant, shared.ManifestLabelPackageJSON, detectionError)
	}
	reconciler.logger.Debug(logMessageManifestDetectedConstant, zap.String(logFieldBaseDirectoryConstant, baseDirectory), zap.String(logFieldLabelConstant, string(label)))

	documentation, documentationError := reconciler.documentationLoader.Load(baseDirectory)
	if documentationError != nil {
		return reconciler.fail(baseDirectory, stageDocumentationConstant, reconciler.detector.LabelOrDefault(baseDirectory), documentationError)
	}
	reconciler.logger.Debug(logMessageDocumentationLoadedConstant, zap.String(logFieldBaseDirectoryConstant, baseDirectory), zap.Int(logFieldDocumentedCountConstant, len(documentation.Names)))

	inventory, inventoryError := reconciler.readInventory(baseDirectory, label)
	if inventoryError != nil {
		return reconciler.fail(baseDirectory, stageManifestConstant, reconciler.detector.LabelOrDefault(baseDirectory), inventoryError)
	}
	reconciler.logger.Debug(logMessageInventoryLoadedConstant, zap.String(logFieldBaseDirectoryConstant, baseDirectory), zap.Int(logFieldManifestCountConstant, len(inventory.Names)))

	verdict := Diff(inventory, documentation)
	reconciler.logger.Debug(
		logMessageReconciliationFinishedConstant,
		zap.String(logFieldBaseDirectoryConstant, baseDirectory),
		zap.String(logFieldLabelConstant, string(verdict.Label)),
		zap.Bool(logFieldOKConstant, verdict.OK),
		zap.Int(logFieldMissingCountConstant, len(verdict.Missing)),
		zap.Int(logFieldExtraCountConstant, len(verdict.Extra)),
		zap.Int(logFieldScopeMismatchCountConstant, len(verdict.ScopeMismatches)),
	)
	return verdict
}

func (reconciler *Reconciler) readInventory(baseDirectory string, label shared.ManifestLabel) (manifest.Inventory, error) {
	reader, readerFound := reconciler.manifestReaders[label]
	if !readerFound {
		return manifest.Inventory{}, manifest.ErrNoManifestFound
	}
	return reader.Read(baseDirectory)
}

func (reconciler *Reconciler) fail(baseDirectory string, stage string, label shared.ManifestLabel, failure error) Verdict {
	reconciler.logger.Debug(
		logMessageReconciliationFailedConstant,
		zap.String(logFieldBaseDirectoryConstant, baseDirectory),
		zap.String(logFieldStageConstant, stage),
		zap.String(logFieldLabelConstant, string(label)),
		zap.Error(failure),
	)
	return failedVerdict(label, failure)
}
