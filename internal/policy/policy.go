// Package policy enforces versioning rules on a detected version change, beyond the
// SemVer syntax check every change already passes.
package policy

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/indaco/vercheck/internal/semver"
)

// RuleType defines the type of policy rule.
type RuleType string

const (
	RulePreReleaseFormat    RuleType = "pre-release-format"
	RuleMajorVersionMax     RuleType = "major-version-max"
	RuleMinorVersionMax     RuleType = "minor-version-max"
	RulePatchVersionMax     RuleType = "patch-version-max"
	RuleRequirePreRelease0x RuleType = "require-pre-release-for-0x"
	RuleBranchConstraint    RuleType = "branch-constraint"
	RuleNoMajorBump         RuleType = "no-major-bump"
	RuleNoMinorBump         RuleType = "no-minor-bump"
	RuleNoPatchBump         RuleType = "no-patch-bump"
	RuleMaxPreReleaseIter   RuleType = "max-prerelease-iterations"
	RuleRequireEvenMinor    RuleType = "require-even-minor"
)

var knownRules = []RuleType{
	RulePreReleaseFormat,
	RuleMajorVersionMax,
	RuleMinorVersionMax,
	RulePatchVersionMax,
	RuleRequirePreRelease0x,
	RuleBranchConstraint,
	RuleNoMajorBump,
	RuleNoMinorBump,
	RuleNoPatchBump,
	RuleMaxPreReleaseIter,
	RuleRequireEvenMinor,
}

// Rule is one entry of the "rules" list in .vercheck.yaml.
type Rule struct {
	Type    RuleType `yaml:"type"`
	Pattern string   `yaml:"pattern,omitempty"`
	Value   int      `yaml:"value,omitempty"`
	Enabled bool     `yaml:"enabled,omitempty"`
	Branch  string   `yaml:"branch,omitempty"`
	Allowed []string `yaml:"allowed,omitempty"`
}

// Change is a version change as seen by the rules.
type Change struct {
	Old  semver.SemVersion
	New  semver.SemVersion
	Bump semver.BumpKind
	// Branch is the branch the change lands on. Empty when unknown.
	Branch string
}

// ViolationError reports the first rule a change broke.
type ViolationError struct {
	Rule   RuleType
	Reason string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("Version policy %q violated: %s.", e.Rule, e.Reason)
}

// ValidateRules checks rule types and patterns without evaluating them.
func ValidateRules(rules []Rule) error {
	for i, r := range rules {
		if !slices.Contains(knownRules, r.Type) {
			return fmt.Errorf("rules[%d]: unknown rule type %q", i, r.Type)
		}
		if r.Type == RulePreReleaseFormat && r.Pattern != "" {
			if _, err := regexp.Compile(r.Pattern); err != nil {
				return fmt.Errorf("rules[%d]: invalid pre-release pattern %q: %w", i, r.Pattern, err)
			}
		}
	}
	return nil
}

// Checker evaluates rules in order.
type Checker struct {
	rules []Rule
}

// NewChecker creates a Checker for rules.
func NewChecker(rules []Rule) *Checker {
	return &Checker{rules: rules}
}

// Check returns a *ViolationError for the first rule c breaks.
func (p *Checker) Check(c Change) error {
	for i := range p.rules {
		if err := p.applyRule(&p.rules[i], c); err != nil {
			return err
		}
	}
	return nil
}

func (p *Checker) applyRule(rule *Rule, c Change) error {
	switch rule.Type {
	case RulePreReleaseFormat:
		return validatePreReleaseFormat(rule, c.New)
	case RuleMajorVersionMax:
		return validateMaxVersion(rule, c.New.Major, "major")
	case RuleMinorVersionMax:
		return validateMaxVersion(rule, c.New.Minor, "minor")
	case RulePatchVersionMax:
		return validateMaxVersion(rule, c.New.Patch, "patch")
	case RuleRequirePreRelease0x:
		return validateRequirePreRelease0x(rule, c.New)
	case RuleBranchConstraint:
		return validateBranchConstraint(rule, c)
	case RuleNoMajorBump:
		return validateNoBump(rule, c.Bump, semver.BumpMajor)
	case RuleNoMinorBump:
		return validateNoBump(rule, c.Bump, semver.BumpMinor)
	case RuleNoPatchBump:
		return validateNoBump(rule, c.Bump, semver.BumpPatch)
	case RuleMaxPreReleaseIter:
		return validateMaxPreReleaseIterations(rule, c.New)
	case RuleRequireEvenMinor:
		return validateRequireEvenMinor(rule, c.New)
	default:
		return fmt.Errorf("unknown rule type: %s", rule.Type)
	}
}

func violation(rule *Rule, format string, args ...any) error {
	return &ViolationError{Rule: rule.Type, Reason: fmt.Sprintf(format, args...)}
}

func validatePreReleaseFormat(rule *Rule, v semver.SemVersion) error {
	if v.PreRelease == "" || rule.Pattern == "" {
		return nil
	}

	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pre-release pattern %q: %w", rule.Pattern, err)
	}
	if !re.MatchString(v.PreRelease) {
		return violation(rule, "pre-release label %q does not match %q", v.PreRelease, rule.Pattern)
	}
	return nil
}

func validateMaxVersion(rule *Rule, value int, component string) error {
	if rule.Value <= 0 {
		return nil
	}
	if value > rule.Value {
		return violation(rule, "%s version %d exceeds maximum %d", component, value, rule.Value)
	}
	return nil
}

func validateRequirePreRelease0x(rule *Rule, v semver.SemVersion) error {
	if !rule.Enabled {
		return nil
	}
	if v.Major == 0 && v.PreRelease == "" {
		return violation(rule, "0.x versions need a pre-release label (e.g. 0.%d.%d-alpha)", v.Minor, v.Patch)
	}
	return nil
}

// validateBranchConstraint restricts the bump kinds allowed on branches matching
// rule.Branch. The rule is skipped when the branch is unknown.
func validateBranchConstraint(rule *Rule, c Change) error {
	if rule.Branch == "" || len(rule.Allowed) == 0 || c.Branch == "" {
		return nil
	}

	matched, err := matchBranchPattern(rule.Branch, c.Branch)
	if err != nil {
		return fmt.Errorf("invalid branch pattern %q: %w", rule.Branch, err)
	}
	if !matched || slices.Contains(rule.Allowed, c.Bump.String()) {
		return nil
	}

	return violation(rule, "%s bumps are not allowed on branch %q (allowed: %s)", c.Bump, c.Branch, strings.Join(rule.Allowed, ", "))
}

func validateNoBump(rule *Rule, actual, restricted semver.BumpKind) error {
	if !rule.Enabled {
		return nil
	}
	if actual == restricted {
		return violation(rule, "%s bumps are not allowed", restricted)
	}
	return nil
}

// matchBranchPattern matches branch against a glob where * spans any characters.
func matchBranchPattern(pattern, branch string) (bool, error) {
	expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, ".*") + "$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return false, err
	}
	return re.MatchString(branch), nil
}

// validateMaxPreReleaseIterations caps the trailing number of a pre-release label,
// so with a value of 5 "rc.6" fails and "rc.5" passes.
func validateMaxPreReleaseIterations(rule *Rule, v semver.SemVersion) error {
	if rule.Value <= 0 || v.PreRelease == "" {
		return nil
	}

	iteration := trailingNumber(v.PreRelease)
	if iteration < 0 {
		return nil
	}
	if iteration > rule.Value {
		return violation(rule, "pre-release iteration %d of %s exceeds maximum %d", iteration, v.String(), rule.Value)
	}
	return nil
}

// trailingNumber returns the number at the end of s, or -1 if s does not end in a digit.
func trailingNumber(s string) int {
	start := len(s)
	for start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
		start--
	}
	if start == len(s) {
		return -1
	}

	n := 0
	for _, c := range s[start:] {
		n = n*10 + int(c-'0')
	}
	return n
}

// validateRequireEvenMinor rejects odd minor versions on stable releases.
func validateRequireEvenMinor(rule *Rule, v semver.SemVersion) error {
	if !rule.Enabled || v.PreRelease != "" {
		return nil
	}
	if v.Minor%2 != 0 {
		return violation(rule, "stable release %d.%d.%d has an odd minor version", v.Major, v.Minor, v.Patch)
	}
	return nil
}
