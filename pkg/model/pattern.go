package model

import (
	"fmt"
	"regexp"
	"sync"
)

var patternCache sync.Map // string -> *regexp.Regexp

// CompilePattern compiles a rule pattern, caching the result by source text.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("model: invalid pattern %q: %w", pattern, err)
	}
	actual, _ := patternCache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}
