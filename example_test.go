package fastget_test

import (
	"context"
	"fmt"
	"time"

	"github.com/fastget/fastget"
)

func ExampleSend() {
	conn, err := fastget.Send(context.Background(), "example.com", "/", nil, fastget.Options{
		Timeout: 2 * time.Second,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	buf := fastget.NewBuffer(4096)
	if err := conn.Receive(context.Background(), buf); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(buf.String())
}
