// Command chat is a line-oriented terminal client for the portfolio assistant. It
// drives the conversation controller against a running relay, printing reply
// fragments as they stream in.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jacobjk03/Portfolio/internal/chat"
)

func main() {
	url := flag.String("url", "http://localhost:8080/api/chat", "chat relay endpoint")
	flag.Parse()

	ctrl := chat.New(*url, chat.WithOnFragment(func(fragment string) {
		fmt.Print(fragment)
	}))

	ctrl.EnsureGreeting()
	printLast(ctrl)
	fmt.Println(`Type "/reset" to start over, "/quit" to exit.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nyou> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/quit":
			return
		case "/reset":
			ctrl.Reset()
			printLast(ctrl)
			continue
		}

		fmt.Print("assistant> ")
		if err := ctrl.Send(context.Background(), line); err != nil {
			// The conversation already carries the warning message; show it.
			printLast(ctrl)
		}
		fmt.Println()
	}
}

func printLast(ctrl *chat.Controller) {
	messages := ctrl.Messages()
	if len(messages) == 0 {
		return
	}
	fmt.Println(messages[len(messages)-1].Content)
}
