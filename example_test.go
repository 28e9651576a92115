package formship_test

import (
	"context"
	"fmt"
	"io"

	"github.com/bft-labs/formship"
)

// ExampleSend submits a form to a test endpoint that answers with a fixture.
func ExampleSend() {
	body, err := formship.Send(context.Background(), formship.Config{}, "test://orders", "",
		[]formship.Parameter{formship.Text("id", "42")},
		formship.WithFixture("orders", []byte("accepted")),
	)
	if err != nil {
		fmt.Println("send failed:", err)
		return
	}
	defer body.Close()

	b, _ := io.ReadAll(body)
	fmt.Println(string(b))
	// Output: accepted
}
