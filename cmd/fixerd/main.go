package main

import "log"

func main() {
	server := NewServer(NewPlayerFixer(), ServerConfig{})
	log.Println("fixerd listening on :8080")
	if err := server.Run(":8080"); err != nil {
		log.Fatalf("fixerd: server failed: %v", err)
	}
}
