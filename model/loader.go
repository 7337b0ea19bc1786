package model

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	ort "github.com/yalue/onnxruntime_go"
)

// Options locate the model artifact.
type Options struct {
	ModelPath string
	// MetadataPath defaults to ModelPath with a .json extension.
	MetadataPath string
	// SharedLibraryPath overrides the onnxruntime shared library location.
	SharedLibraryPath string
}

// Loaded is the process-wide model, read-only after Load returns.
type Loaded struct {
	Scorer   Scorer
	Metadata *Metadata
	closers  []io.Closer
	ownsEnv  bool
}

// MetadataPathFor derives the sidecar path from a model path.
func MetadataPathFor(modelPath string) string {
	return strings.TrimSuffix(modelPath, filepath.Ext(modelPath)) + ".json"
}

// Load reads the metadata sidecar, starts onnxruntime and builds the scorer.
func Load(opts Options) (*Loaded, error) {
	metaPath := opts.MetadataPath
	if metaPath == "" {
		metaPath = MetadataPathFor(opts.ModelPath)
	}
	meta, err := ReadMetadata(metaPath)
	if err != nil {
		return nil, err
	}

	ownsEnv := false
	if !ort.IsInitialized() {
		if opts.SharedLibraryPath != "" {
			ort.SetSharedLibraryPath(opts.SharedLibraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
		}
		ownsEnv = true
	}

	clf, err := NewONNXClassifier(opts.ModelPath, meta)
	if err != nil {
		if ownsEnv {
			_ = ort.DestroyEnvironment()
		}
		return nil, err
	}

	scorer, err := Build(meta, clf)
	if err != nil {
		_ = clf.(io.Closer).Close()
		if ownsEnv {
			_ = ort.DestroyEnvironment()
		}
		return nil, err
	}

	return &Loaded{
		Scorer:   scorer,
		Metadata: meta,
		closers:  []io.Closer{clf.(io.Closer)},
		ownsEnv:  ownsEnv,
	}, nil
}

// Build assembles the scorer described by meta around a classifier stage.
func Build(meta *Metadata, clf VectorClassifier) (Scorer, error) {
	enc := NewColumnEncoder(meta.Columns)
	switch meta.Kind {
	case KindClassifier:
		return NewClassifier(enc, clf), nil
	case KindPipeline:
		p, err := NewStagePipeline(
			NamedStep{Name: PreprocessStep, Stage: enc},
			NamedStep{Name: meta.FinalStep, Stage: clf},
		)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidMetadata, meta.Kind)
	}
}

// Close releases the sessions and, if Load started it, the runtime.
func (l *Loaded) Close() error {
	var errs []error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if l.ownsEnv {
		if err := ort.DestroyEnvironment(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
