package check

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/depdoc/internal/reconcile"
	"github.com/temirov/depdoc/internal/utils"
	pathutils "github.com/temirov/depdoc/internal/utils/path"
)

const (
	logMessageCheckingRootConstant  = "checking project root"
	logMessageRootCheckedConstant   = "project root checked"
	logFieldRootConstant            = "root"
	logFieldOKConstant              = "ok"
	logFieldRootCountConstant       = "root_count"
	logMessageRootsResolvedConstant = "project roots resolved"
	noRootsErrorMessageConstant     = "no project roots to check"
)

// ErrNoRoots reports that root resolution produced nothing to check.
var ErrNoRoots = errors.New(noRootsErrorMessageConstant)

// VerdictChecker audits a single project directory.
type VerdictChecker interface {
	Check(baseDirectory string) reconcile.Verdict
}

// Service executes the check workflow for resolved options.
type Service struct {
	checker      VerdictChecker
	rootExpander *pathutils.RootExpander
	output       io.Writer
	errorOutput  io.Writer
	logger       *zap.Logger
	watchTiming  watchTiming
}

// NewService constructs a Service. Nil collaborators fall back to the operating system defaults.
func NewService(checker VerdictChecker, rootExpander *pathutils.RootExpander, output io.Writer, errorOutput io.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if checker == nil {
		checker = reconcile.NewReconciler(nil, logger)
	}
	if rootExpander == nil {
		rootExpander = pathutils.NewRootExpander(nil)
	}
	if output == nil {
		output = io.Discard
	}
	if errorOutput == nil {
		errorOutput = io.Discard
	}
	return &Service{
		checker:      checker,
		rootExpander: rootExpander,
		output:       output,
		errorOutput:  errorOutput,
		logger:       logger,
		watchTiming:  defaultWatchTiming(),
	}
}

// Run checks every root once, or keeps re-checking on changes when options.Watch is set.
// A single run returns ErrCheckFailed when any verdict fails. Watch mode returns nil
// once executionContext is cancelled.
func (service *Service) Run(executionContext context.Context, options Options) error {
	roots, expandError := service.rootExpander.Expand(options.Roots)
	if expandError != nil {
		return expandError
	}
	if len(roots) == 0 {
		return ErrNoRoots
	}
	service.logger.Debug(logMessageRootsResolvedConstant, zap.Int(logFieldRootCountConstant, len(roots)), zap.Strings(logFieldRootConstant, roots))

	output := service.output
	errorOutput := service.errorOutput
	if options.Watch {
		output, errorOutput = utils.NewFlushingWriterPair(output, errorOutput)
	}

	renderer, rendererError := newReportRenderer(options.Format, options.Color, output, errorOutput)
	if rendererError != nil {
		return rendererError
	}

	if !options.Watch {
		return service.checkAndRender(roots, renderer)
	}
	if executionContext == nil {
		executionContext = context.Background()
	}
	return service.watch(executionContext, roots, renderer)
}

func (service *Service) checkAndRender(roots []string, renderer reportRenderer) error {
	reports := service.checkRoots(roots)
	if renderError := renderer.Render(reports); renderError != nil {
		return renderError
	}
	for _, report := range reports {
		if !report.OK {
			return ErrCheckFailed
		}
	}
	return nil
}

func (service *Service) checkRoots(roots []string) []Report {
	reports := make([]Report, 0, len(roots))
	for _, root := range roots {
		service.logger.Debug(logMessageCheckingRootConstant, zap.String(logFieldRootConstant, root))
		verdict := service.checker.Check(root)
		service.logger.Debug(logMessageRootCheckedConstant, zap.String(logFieldRootConstant, root), zap.Bool(logFieldOKConstant, verdict.OK))
		reports = append(reports, Report{Root: root, Verdict: verdict})
	}
	return reports
}
