package streamedit_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/streamedit"
	"github.com/hupe1980/streamedit/storage"
)

// Example demonstrates editing an in-memory stream with a small buffer.
func Example() {
	ctx := context.Background()
	buf := storage.NewBuffer([]byte("hello world"))

	ed, err := streamedit.New(buf, streamedit.WithBufferSize(3))
	if err != nil {
		log.Fatal(err)
	}

	if err := ed.Insert(ctx, 5, []byte(",")); err != nil {
		log.Fatal(err)
	}
	if err := ed.WriteStart(ctx, []byte("> ")); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s\n", buf.Bytes())
	// Output: > hello, world
}

// ExampleEditor_MoveTo swaps two words without loading the stream.
func ExampleEditor_MoveTo() {
	buf := storage.NewBuffer([]byte("world hello"))
	ed, err := streamedit.New(buf, streamedit.WithBufferSize(2))
	if err != nil {
		log.Fatal(err)
	}

	// Move "hello" to the front; the stream becomes "helloworld ".
	if err := ed.MoveTo(context.Background(), 6, 0, 5); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%q\n", buf.Bytes())
	// Output: "helloworld "
}

// ExampleEditor_FindAll lists non-overlapping matches lazily.
func ExampleEditor_FindAll() {
	ed, err := streamedit.New(storage.NewBuffer([]byte("abababab")))
	if err != nil {
		log.Fatal(err)
	}

	for off, err := range ed.FindAll(context.Background(), []byte("bab"), streamedit.WithMaxCount(5)) {
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(off)
	}
	// Output:
	// 1
	// 5
}

// ExampleEditor_CutBytes removes and returns a region.
func ExampleEditor_CutBytes() {
	buf := storage.NewBuffer([]byte("keep-drop-keep"))
	ed, err := streamedit.New(buf)
	if err != nil {
		log.Fatal(err)
	}

	cut, err := ed.CutBytes(context.Background(), 4, 5)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s %s\n", cut, buf.Bytes())
	// Output: -drop keep-keep
}
