package main

import (
	"log"

	"github.com/daystram/evalbar/bench"
)

func perft(depth int, fen string, parallel bool) error {
	log.Printf("============ perft(%d)\n", depth)
	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			log.Println(s)
		}
	}()
	_, err := bench.Perft(depth, fen, parallel, true, out)
	close(out)
	<-done
	return err
}
