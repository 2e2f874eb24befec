package session

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/sdejongh/cmpgroups/pkg/output"
)

// ResolutionError reports a group spec that names no group
type ResolutionError struct {
	Spec   string
	Reason string
}

func (e *ResolutionError) Error() string {
	return e.Reason
}

// resolver tries one interpretation of a spec. ok is false when the spec
// does not have that form and the next resolver should be tried.
type resolver func(s *Session, spec string) (index int, ok bool, err error)

// resolvers run in order; number and base-token forms win over patterns
var resolvers = []resolver{
	resolveIndex,
	resolveBaseToken,
	resolvePattern,
}

var indexPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)

// Resolve turns a group spec into a group index. A spec is a group
// number, the token b or base, or a regular expression matched against
// member file names.
func (s *Session) Resolve(spec string) (int, error) {
	for _, r := range resolvers {
		index, ok, err := r(s, spec)
		if ok || err != nil {
			return index, err
		}
	}
	return -1, &ResolutionError{Spec: spec, Reason: fmt.Sprintf("cannot resolve %q", spec)}
}

func resolveIndex(s *Session, spec string) (int, bool, error) {
	if !indexPattern.MatchString(spec) {
		return -1, false, nil
	}

	last := s.groups.Last()
	n, err := strconv.Atoi(spec)
	if err != nil || n < 0 || n > last {
		return -1, true, &ResolutionError{
			Spec:   spec,
			Reason: fmt.Sprintf("group %s out of range (0..%d)", spec, last),
		}
	}
	return n, true, nil
}

func resolveBaseToken(s *Session, spec string) (int, bool, error) {
	if spec != "b" && spec != "base" {
		return -1, false, nil
	}
	if s.groups.Len() == 0 {
		return -1, true, &ResolutionError{Spec: spec, Reason: "there are no groups"}
	}
	return s.base, true, nil
}

func resolvePattern(s *Session, spec string) (int, bool, error) {
	re, err := regexp.Compile(spec)
	if err != nil {
		return -1, true, &ResolutionError{
			Spec:   spec,
			Reason: fmt.Sprintf("invalid pattern %q: %v", spec, err),
		}
	}

	for i, g := range s.groups.Groups {
		for _, f := range g.Files {
			if re.MatchString(f) {
				output.Notice(s.out, "'%s' matches %s in group %d", spec, f, i)
				return i, true, nil
			}
		}
	}

	return -1, true, &ResolutionError{
		Spec:   spec,
		Reason: fmt.Sprintf("no file matches %q", spec),
	}
}
