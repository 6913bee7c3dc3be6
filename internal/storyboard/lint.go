package storyboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Lint reports every problem in sb at once. Rendering does not call it;
// the covariance PSD check only runs here.
func Lint(sb *Storyboard) error {
	var errs []error
	if sb.Version == "" {
		errs = append(errs, errors.New("version is missing"))
	}

	ids := make([]string, 0, len(sb.Timing))
	for id := range sb.Timing {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if !Known(id) {
			errs = append(errs, fmt.Errorf("timing: unknown scene %q", id))
		} else if sb.Timing[id] <= 0 {
			errs = append(errs, fmt.Errorf("timing: %s has non-positive duration %g", id, sb.Timing[id]))
		}
	}

	errs = append(errs, lintCloud("cloud_2d", sb.Cloud2D, 2)...)
	errs = append(errs, lintCloud("cloud_3d", sb.Cloud3D, 3)...)

	if sb.Ellipse.Width <= 0 || sb.Ellipse.Height <= 0 {
		errs = append(errs, errors.New("review_ellipse: width and height must be positive"))
	}
	if sb.Ellipse.Samples <= 0 {
		errs = append(errs, errors.New("review_ellipse: samples must be positive"))
	}

	for name, hex := range sb.Palette {
		if !validHex(hex) {
			errs = append(errs, fmt.Errorf("palette: %s has invalid colour %q", name, hex))
		}
	}
	return errors.Join(errs...)
}

func lintCloud(name string, c CloudSpec, dim int) []error {
	var errs []error
	if c.Covariance.Dim() != dim {
		errs = append(errs, fmt.Errorf("%s: covariance must be %dx%d", name, dim, dim))
	} else if err := c.Covariance.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	if c.Points <= 0 {
		errs = append(errs, fmt.Errorf("%s: points must be positive", name))
	}
	return errs
}

func validHex(s string) bool {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range h {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
