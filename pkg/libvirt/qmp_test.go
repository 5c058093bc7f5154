package libvirt

import (
	"testing"

	"github.com/digitalocean/go-libvirt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGraphicsStatus(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name    string
		reply   string
		want    *GraphicsStatus
		wantErr string
	}{
		{
			name:  "vnc enabled",
			reply: `{"return": {"enabled": true, "host": "127.0.0.1", "service": "5900", "family": "ipv4", "auth": "none", "clients": []}, "id": "libvirt-12"}`,
			want:  &GraphicsStatus{Enabled: true, Host: "127.0.0.1", Service: "5900"},
		},
		{
			name:  "spice enabled",
			reply: `{"return": {"enabled": true, "migrated": false, "host": "0.0.0.0", "port": 5930, "auth": "none", "channels": []}}`,
			want:  &GraphicsStatus{Enabled: true, Host: "0.0.0.0", Port: 5930},
		},
		{
			name:  "vnc disabled",
			reply: `{"return": {"enabled": false}}`,
			want:  &GraphicsStatus{},
		},
		{
			name:    "command not found",
			reply:   `{"error": {"class": "CommandNotFound", "desc": "The command query-spice has not been found"}}`,
			wantErr: "CommandNotFound",
		},
		{
			name:    "no return value",
			reply:   `{"id": "libvirt-12"}`,
			wantErr: "no return value",
		},
		{
			name:    "not json",
			reply:   `OK`,
			wantErr: "parse qmp reply",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseGraphicsStatus([]byte(tc.reply))
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestQueryGraphics_UnsupportedType(t *testing.T) {
	t.Parallel()

	c := &Client{}
	_, err := c.QueryGraphics(libvirt.Domain{Name: "vm-1"}, "rdp")
	assert.ErrorContains(t, err, "unsupported graphics type")
}
