package respond

import "golang.org/x/sys/unix"

// writen writes all of buf to fd, retrying on short writes and treating
// EAGAIN/EINTR as transient rather than fatal. Any other error aborts the
// send; the caller closes the connection.
func writen(fd int, buf []byte) error {
	for len(buf) > 0 {
		n, err := unix.Write(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return err
		}
		buf = buf[n:]
	}
	return nil
}
