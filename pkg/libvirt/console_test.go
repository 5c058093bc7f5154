package libvirt

import (
	"errors"
	"fmt"
	"testing"

	"github.com/digitalocean/go-libvirt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runningDomainXML = `<domain type='kvm' id='3'>
  <name>i-1001</name>
  <uuid>6f1b3c7e-8a2d-4c55-9d1e-2b7a4f0c9e11</uuid>
  <devices>
    <serial type='pty'>
      <source path='/dev/pts/4'/>
      <target type='isa-serial' port='0'/>
    </serial>
    <console type='pty' tty='/dev/pts/4'>
      <source path='/dev/pts/4'/>
      <target type='serial' port='0'/>
    </console>
    <graphics type='vnc' socket='/var/lib/libvirt/qemu/i-1001.vnc'>
      <listen type='socket' socket='/var/lib/libvirt/qemu/i-1001.vnc'/>
    </graphics>
    <graphics type='spice' port='5901' autoport='yes' listen='0.0.0.0'>
      <listen type='address' address='0.0.0.0'/>
    </graphics>
  </devices>
</domain>`

const stoppedDomainXML = `<domain type='kvm'>
  <name>i-1002</name>
  <devices>
    <console type='pty'>
      <target type='serial' port='0'/>
    </console>
    <graphics type='spice' autoport='yes'>
      <listen type='address'/>
    </graphics>
  </devices>
</domain>`

func TestParseConsoleInfo(t *testing.T) {
	t.Parallel()

	t.Run("running domain", func(t *testing.T) {
		t.Parallel()

		info, err := ParseConsoleInfo(runningDomainXML)
		require.NoError(t, err)

		assert.Equal(t, "/dev/pts/4", info.SerialDevice)

		vnc, ok := info.FindGraphics("vnc")
		require.True(t, ok)
		assert.Equal(t, "/var/lib/libvirt/qemu/i-1001.vnc", vnc.Socket)
		assert.True(t, vnc.Attachable())

		spice, ok := info.FindGraphics("spice")
		require.True(t, ok)
		assert.Equal(t, "0.0.0.0", spice.Host)
		assert.Equal(t, 5901, spice.Port)
		assert.True(t, spice.Attachable())
	})

	t.Run("stopped domain has nothing attachable", func(t *testing.T) {
		t.Parallel()

		info, err := ParseConsoleInfo(stoppedDomainXML)
		require.NoError(t, err)

		assert.Empty(t, info.SerialDevice)
		_, ok := info.FindGraphics("vnc")
		assert.False(t, ok)

		spice, ok := info.FindGraphics("spice")
		require.True(t, ok)
		assert.False(t, spice.Attachable())
	})

	t.Run("invalid xml", func(t *testing.T) {
		t.Parallel()

		_, err := ParseConsoleInfo("<domain")
		assert.Error(t, err)
	})
}

func TestWrapDomainError(t *testing.T) {
	t.Parallel()

	notFound := libvirt.Error{Code: uint32(libvirt.ErrNoDomain), Message: "Domain not found"}
	err := wrapDomainError("i-1", "lookup domain", notFound)
	assert.True(t, errors.Is(err, ErrDomainNotFound))

	err = wrapDomainError("i-1", "lookup domain", fmt.Errorf("connection reset"))
	assert.False(t, errors.Is(err, ErrDomainNotFound))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestFormatDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "running", FormatDomainState(libvirt.DomainRunning))
	assert.Equal(t, "stopped", FormatDomainState(libvirt.DomainShutoff))
	assert.Equal(t, "paused", FormatDomainState(libvirt.DomainPaused))

	id := libvirt.UUID{0x6f, 0x1b, 0x3c, 0x7e, 0x8a, 0x2d, 0x4c, 0x55, 0x9d, 0x1e, 0x2b, 0x7a, 0x4f, 0x0c, 0x9e, 0x11}
	assert.Equal(t, "6f1b3c7e-8a2d-4c55-9d1e-2b7a4f0c9e11", FormatDomainUUID(id))
}
