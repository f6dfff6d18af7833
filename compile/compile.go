package compile

import (
	"context"
	"fmt"
	"time"

	"github.com/NickyBoy89/cfc/config"
	"github.com/NickyBoy89/cfc/parsing"
	"github.com/NickyBoy89/cfc/symbol"
	log "github.com/sirupsen/logrus"
)

// Result holds the results of a compilation run.
type Result struct {
	Registry *symbol.Registry
	// The root of every class tree, in registration order
	Roots []*symbol.Class
	Files []*parsing.SourceFile
	// Duration of the whole run
	Duration time.Duration
}

// Ladder returns every class, with each class before all of its descendants
func (r *Result) Ladder() []*symbol.Class {
	return r.Registry.Ordered()
}

// Run reads every parcel's declarations, registers the classes they declare,
// and grows the class hierarchy. The first error aborts the run
func Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	reg := symbol.NewRegistry(cfg.RootClass)
	parcels, err := registerParcels(reg, cfg.Parcels)
	if err != nil {
		return nil, fmt.Errorf("registering parcels: %w", err)
	}

	result := &Result{Registry: reg}
	for ind, parcelCfg := range cfg.Parcels {
		files, err := readParcel(cfg, parcelCfg)
		if err != nil {
			return nil, fmt.Errorf("reading parcel %s: %w", parcelCfg.Name, err)
		}

		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := file.ParseAST(ctx); err != nil {
				return nil, err
			}
			if _, err := file.ExtractClasses(reg, parcels[ind]); err != nil {
				return nil, err
			}
		}

		log.WithFields(log.Fields{
			"parcel": parcelCfg.Name,
			"files":  len(files),
		}).Debug("Read parcel")
		result.Files = append(result.Files, files...)
	}

	result.Roots, err = reg.Build()
	if err != nil {
		return nil, fmt.Errorf("building class hierarchy: %w", err)
	}

	result.Duration = time.Since(start)
	log.WithFields(log.Fields{
		"parcels":  len(reg.Parcels()),
		"classes":  len(reg.Classes()),
		"trees":    len(result.Roots),
		"duration": result.Duration,
	}).Info("Compiled class hierarchy")
	return result, nil
}

// registerParcels creates every configured parcel, in configuration order,
// and connects them to their prerequisites
func registerParcels(reg *symbol.Registry, configured []config.Parcel) ([]*symbol.Parcel, error) {
	parcels := make([]*symbol.Parcel, len(configured))
	for ind, parcelCfg := range configured {
		parcel, err := symbol.NewParcel(parcelCfg.Name, parcelCfg.Nickname, parcelCfg.Included())
		if err != nil {
			return nil, err
		}
		if err := reg.RegisterParcel(parcel); err != nil {
			return nil, err
		}
		parcels[ind] = parcel
	}

	for ind, parcelCfg := range configured {
		for _, prereq := range parcelCfg.Prerequisites {
			other := reg.Parcel(prereq)
			if other == nil {
				return nil, fmt.Errorf("parcel '%s' requires unknown parcel '%s'", parcelCfg.Name, prereq)
			}
			parcels[ind].AddPrereq(other)
		}
	}
	return parcels, nil
}

func readParcel(cfg *config.Config, parcelCfg config.Parcel) ([]*parsing.SourceFile, error) {
	dirs, included := parcelCfg.SourceDirs, false
	if parcelCfg.Included() {
		dirs, included = parcelCfg.IncludeDirs, true
	}

	files := []*parsing.SourceFile{}
	for _, dir := range dirs {
		found, err := parsing.ReadSourcesInDir(dir, included, cfg)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}
