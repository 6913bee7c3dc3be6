// Package system inspects the host: file limits, available encoders,
// memory headroom and CPU count.
package system

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
)

// InitResourceLimits raises the open file limit so parallel encoders and
// formula rasterization do not run out of descriptors.
func InitResourceLimits(logger *zap.Logger) {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		logger.Warn("cannot read open file limit", zap.Error(err))
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}
	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		logger.Warn("cannot raise open file limit", zap.Error(err))
		return
	}
	logger.Debug("open file limit raised", zap.Uint64("limit", uint64(rLimit.Cur)))
}

// hardwareEncoders in order of preference.
var hardwareEncoders = []string{"h264_videotoolbox", "h264_nvenc"}

// GetBestH264Encoder returns the first hardware H.264 encoder ffmpeg
// reports, or libx264.
func GetBestH264Encoder(ctx context.Context) string {
	out, err := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	return pickEncoder(string(out))
}

func pickEncoder(listing string) string {
	for _, name := range hardwareEncoders {
		if strings.Contains(listing, " "+name+" ") {
			return name
		}
	}
	return "libx264"
}

// RequireTools fails when one of the external programs is not on PATH.
func RequireTools(names ...string) error {
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("%s not found on PATH: %w", name, err)
		}
	}
	return nil
}

// FrameBudget estimates the memory one rendering part holds at w x h: the
// canvas, the frame being piped and a pooled conversion buffer, plus a
// fixed allowance for fonts and encoder pipes.
func FrameBudget(w, h int) uint64 {
	const overhead = 64 << 20
	return 3*uint64(w)*uint64(h)*4 + overhead
}

// CheckMemory fails when the host cannot hold parts concurrent renders.
func CheckMemory(parts, w, h int) error {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return fmt.Errorf("read memory stats: %w", err)
	}
	need := uint64(parts) * FrameBudget(w, h)
	if vm.Available < need {
		return fmt.Errorf("not enough memory: %d MiB available, %d MiB needed for %d parallel part(s) at %dx%d",
			vm.Available>>20, need>>20, parts, w, h)
	}
	return nil
}

// DefaultWorkers is the number of parts worth rendering at once: one per
// two physical cores, at least one.
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n < 2 {
		return 1
	}
	return n / 2
}
