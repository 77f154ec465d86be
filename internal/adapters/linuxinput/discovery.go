//go:build linux

package linuxinput

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"syscall"

	evdev "github.com/holoplot/go-evdev"
)

// ErrNoDevices means no readable keyboard or mouse was found. It usually
// wraps a permission error on /dev/input.
var ErrNoDevices = errors.New("no readable input devices with key/button events found")

type DeviceInfo struct {
	Path      string
	Name      string
	IsVirtual bool
	IsPointer bool
	HasKeys   bool
}

// hotkeySource reports whether the listener should read this device.
// Virtual devices are skipped so our own clicks never count as hotkeys.
func (d DeviceInfo) hotkeySource() bool {
	return d.HasKeys && !d.IsVirtual
}

var virtualNameHints = []string{"virtual", "uinput", "ydotool", injectorName}

func ListInputDevices() ([]DeviceInfo, error) {
	paths, err := devicePaths()
	if err != nil {
		return nil, err
	}

	devices := make([]DeviceInfo, 0, len(paths))
	for _, p := range paths {
		dev, err := evdev.OpenWithFlags(p.Path, os.O_RDONLY)
		if err != nil {
			continue
		}
		devices = append(devices, inspect(dev, p.Name))
		_ = dev.Close()
	}
	return devices, nil
}

// openKeyDevices opens every physical device that reports EV_KEY in
// nonblocking mode. When nothing could be opened the error wraps
// ErrNoDevices and the first permission error seen, if any.
func openKeyDevices() ([]*evdev.InputDevice, error) {
	paths, err := devicePaths()
	if err != nil {
		return nil, err
	}

	var denied error
	var opened []*evdev.InputDevice
	for _, p := range paths {
		dev, err := evdev.OpenWithFlags(p.Path, os.O_RDONLY)
		if err != nil {
			if denied == nil && isPermissionError(err) {
				denied = err
			}
			continue
		}
		if !inspect(dev, p.Name).hotkeySource() || dev.NonBlock() != nil {
			_ = dev.Close()
			continue
		}
		opened = append(opened, dev)
	}

	switch {
	case len(opened) > 0:
		return opened, nil
	case denied != nil:
		return nil, fmt.Errorf("%w: %w", ErrNoDevices, denied)
	default:
		return nil, ErrNoDevices
	}
}

func devicePaths() ([]evdev.InputPath, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}
	slices.SortFunc(paths, func(a, b evdev.InputPath) int {
		return strings.Compare(a.Path, b.Path)
	})
	return paths, nil
}

func inspect(dev *evdev.InputDevice, listedName string) DeviceInfo {
	info := DeviceInfo{
		Path:    dev.Path(),
		Name:    listedName,
		HasKeys: len(dev.CapableEvents(evdev.EV_KEY)) > 0,
	}
	if name, err := dev.Name(); err == nil && name != "" {
		info.Name = name
	}

	if id, err := dev.InputID(); err == nil && id.BusType == uint16(evdev.BUS_VIRTUAL) {
		info.IsVirtual = true
	} else {
		lower := strings.ToLower(info.Name)
		info.IsVirtual = slices.ContainsFunc(virtualNameHints, func(hint string) bool {
			return strings.Contains(lower, hint)
		})
	}

	rel := dev.CapableEvents(evdev.EV_REL)
	info.IsPointer = (slices.Contains(rel, evdev.REL_X) && slices.Contains(rel, evdev.REL_Y)) ||
		len(dev.CapableEvents(evdev.EV_ABS)) > 0
	return info
}

func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM)
}

// isDeviceGone reports errors seen after a device is unplugged or closed.
func isDeviceGone(err error) bool {
	return errors.Is(err, syscall.ENODEV) || errors.Is(err, syscall.EBADF) || errors.Is(err, os.ErrClosed)
}

func isWouldBlock(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
