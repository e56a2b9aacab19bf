// huff encodes text files with a Huffman code and decodes them back.
//
//	huff run file.txt          encode to encoded.txt, decode to decoded.txt
//	huff encode file.txt       write encoded.txt and tree.cbor
//	huff decode                decode encoded.txt with tree.cbor into decoded.txt
//	huff inspect tree.cbor     print a persisted tree and its code table
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newApp().RunContext(ctx, os.Args)
	stop()
	checkErr(err)
}

func checkErr(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
