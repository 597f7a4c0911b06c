package regcraft

import (
	"github.com/KromDaniel/regcraft/internal/compiler"
	"github.com/KromDaniel/regcraft/pattern"
)

// AnalysisResult describes a rendered pattern without generating code.
type AnalysisResult struct {
	// Source is the rendered pattern.
	Source string

	// Engines lists the engines that accept Source, in compiler.Engines order.
	Engines []string

	// RE2 reports whether Source is accepted by the RE2 engines.
	RE2 bool
}

// Analyze renders p and reports which engines can compile it.
//
// Example:
//
//	result, err := regcraft.Analyze(pattern.Ahead(pattern.Lit("x")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Engines) // [regexp2]
func Analyze(p pattern.Pattern) (*AnalysisResult, error) {
	src, features, err := pattern.StringFeatures(p)
	if err != nil {
		return nil, err
	}
	result := &AnalysisResult{Source: src, RE2: true}
	for _, e := range compiler.Engines {
		if e.Check(src, features) != nil {
			if e != compiler.EngineRegexp2 {
				result.RE2 = false
			}
			continue
		}
		result.Engines = append(result.Engines, string(e))
	}
	return result, nil
}
