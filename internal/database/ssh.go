package database

import (
	"fmt"
	"io"
	"net"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// SetupTunnel establishes an SSH tunnel to the ClickHouse host and returns
// the local address to connect through
func SetupTunnel(config Config) (string, func(), error) {
	// Read private key
	key, err := os.ReadFile(config.SSHKey)
	if err != nil {
		return "", nil, fmt.Errorf("unable to read private key: %v", err)
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return "", nil, fmt.Errorf("unable to parse private key: %v", err)
	}

	// Setup SSH client config
	sshConfig := &ssh.ClientConfig{
		User: config.SSHUser,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	// Connect to SSH server
	sshClient, err := ssh.Dial("tcp", fmt.Sprintf("%s:%d", config.SSHHost, config.SSHPort), sshConfig)
	if err != nil {
		return "", nil, fmt.Errorf("unable to connect to SSH server: %v", err)
	}

	// Setup local listener
	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		sshClient.Close()
		return "", nil, fmt.Errorf("unable to setup local listener: %v", err)
	}

	localPort := listener.Addr().(*net.TCPAddr).Port

	// Forward local connections to the ClickHouse native port
	go func() {
		for {
			localConn, err := listener.Accept()
			if err != nil {
				log.Warnf("Error accepting connection: %v", err)
				return
			}

			remoteConn, err := sshClient.Dial("tcp", fmt.Sprintf("%s:%d", config.Host, config.Port))
			if err != nil {
				log.Warnf("Error dialing remote server: %v", err)
				localConn.Close()
				return
			}

			go copyConn(localConn, remoteConn)
			go copyConn(remoteConn, localConn)
		}
	}()

	cleanup := func() {
		listener.Close()
		sshClient.Close()
	}

	return fmt.Sprintf("localhost:%d", localPort), cleanup, nil
}

func copyConn(dst, src net.Conn) {
	defer dst.Close()
	defer src.Close()
	if _, err := io.Copy(dst, src); err != nil {
		log.Warnf("Error copying connection: %v", err)
	}
}
