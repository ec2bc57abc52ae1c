package main

import (
	"flag"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/ryandielhenn/zephyrbeacon/pkg/beacon"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:37020", "target node address")
	n := flag.Int("n", 5000, "datagrams")
	conc := flag.Int("c", 32, "concurrency")
	id := flag.String("id", "blast", "identity embedded in the presence lines")
	flag.Parse()

	wg := sync.WaitGroup{}
	start := time.Now()
	ch := make(chan int, *conc)

	for i := 0; i < *n; i++ {
		wg.Add(1)
		ch <- 1
		go func(i int) {
			defer wg.Done()
			conn, err := net.Dial("udp", *addr)
			if err == nil {
				payload := beacon.Format(fmt.Sprintf("%s-%d", *id, i), time.Now())
				_, _ = conn.Write([]byte(payload))
				conn.Close()
			}
			<-ch
		}(i)
	}
	wg.Wait()
	dur := time.Since(start)
	fmt.Printf("Sent %d datagrams in %s (%.2f msg/s)\n", *n, dur, float64(*n)/dur.Seconds())
}
