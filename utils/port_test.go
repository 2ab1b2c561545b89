package utils

import (
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckListenAddr_FreePort(t *testing.T) {
	// port 0 lets the OS pick a free port
	assert.NoError(t, CheckListenAddr("127.0.0.1:0"))
}

func TestCheckListenAddr_PortInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "Failed to create test listener")
	defer listener.Close()

	addr := listener.Addr().(*net.TCPAddr)

	err = CheckListenAddr(fmt.Sprintf("127.0.0.1:%d", addr.Port))
	assert.Error(t, err, "Port %d should be unavailable (in use)", addr.Port)
	assert.Contains(t, err.Error(), "cannot listen on")
}

func TestCheckListenAddr_InvalidAddress(t *testing.T) {
	assert.Error(t, CheckListenAddr("not-an-address"))
}
