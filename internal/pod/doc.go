// Package pod holds the mathematics behind the animation: sampling a
// synthetic point cloud from a covariance table, measuring the energy a
// direction captures, and decomposing a cloud into its ranked orthogonal
// modes.
//
// The render path never validates its inputs. [Covariance.Validate] exists for
// the storyboard linter.
package pod
