package netio_test

import (
	"context"
	"testing"
	"time"

	"github.com/webcraft-project/async-core/netio"
)

func TestUDPMulticastLoopback(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	receiver, err := netio.BindUDP(ctx, netio.Endpoint{Host: "0.0.0.0", Port: 0})
	if err != nil {
		t.Skipf("BindUDP unavailable in this sandbox: %v", err)
	}
	defer receiver.Close(ctx)

	port := receiver.LocalPort()
	group, err := netio.ParseMulticastGroup("239.255.0.1", port)
	if err != nil {
		t.Fatalf("ParseMulticastGroup: %v", err)
	}

	if err := receiver.Join(group); err != nil {
		t.Skipf("multicast join unavailable in this sandbox: %v", err)
	}
	defer receiver.Leave(group)

	sender, err := netio.BindUDP(ctx, netio.Endpoint{Host: "0.0.0.0", Port: 0})
	if err != nil {
		t.Fatalf("BindUDP sender: %v", err)
	}
	defer sender.Close(ctx)

	recvErr := make(chan error, 1)
	recvDatagram := make(chan netio.Datagram, 1)
	go func() {
		dg, ok, err := receiver.RecvFrom(ctx)
		if err != nil || !ok {
			recvErr <- err

			return
		}
		recvDatagram <- dg
		recvErr <- nil
	}()

	time.Sleep(20 * time.Millisecond)
	if err := sender.SendToGroup(ctx, group, []byte("hello")); err != nil {
		t.Fatalf("SendToGroup: %v", err)
	}

	select {
	case err := <-recvErr:
		if err != nil {
			t.Fatalf("RecvFrom: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("did not receive multicast datagram")
	}

	dg := <-recvDatagram
	if string(dg.Payload) != "hello" {
		t.Fatalf("payload = %q, want %q", dg.Payload, "hello")
	}
}

func TestParseMulticastGroupRejectsUnicast(t *testing.T) {
	if _, err := netio.ParseMulticastGroup("10.0.0.1", 1234); err == nil {
		t.Fatal("expected AddressError for a unicast address")
	}
	if _, err := netio.ParseMulticastGroup("not-an-ip", 1234); err == nil {
		t.Fatal("expected AddressError for a non-IP literal")
	}
	if _, err := netio.ParseMulticastGroup("239.255.0.1", 1234); err != nil {
		t.Fatalf("valid IPv4 multicast literal rejected: %v", err)
	}
	if _, err := netio.ParseMulticastGroup("ff02::1", 1234); err != nil {
		t.Fatalf("valid IPv6 multicast literal rejected: %v", err)
	}
}
