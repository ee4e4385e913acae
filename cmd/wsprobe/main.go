// Package main provides a stress testing tool for the realtime WebSocket
// channels. It logs in, opens the notifications channel per client, joins a
// post watch group, and counts delivered events.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

// Metrics tracks the test results
type Metrics struct {
	ConnectionsAttempted int64
	ConnectionsSuccess   int64
	ConnectionsFailed    int64
	EventsReceived       int64
	Errors               int64
}

var metrics Metrics

func main() {
	host := flag.String("host", "localhost:5099", "API server host")
	username := flag.String("username", "user1", "Test user username")
	password := flag.String("password", "password123", "Test user password")
	clients := flag.Int("clients", 50, "Number of concurrent clients")
	postID := flag.Uint("post", 1, "Post ID to watch on the posts channel")
	duration := flag.Duration("duration", 30*time.Second, "Test duration")
	flag.Parse()

	log.Printf("🚀 Starting WebSocket Stress Test")
	log.Printf("Target: %s", *host)
	log.Printf("Clients: %d", *clients)
	log.Printf("Duration: %v", *duration)

	token, err := login(*host, *username, *password)
	if err != nil {
		log.Fatalf("❌ Login failed: %v", err)
	}
	log.Printf("✅ Logged in successfully")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup
	stopChan := make(chan struct{})

	for i := 0; i < *clients; i++ {
		wg.Add(1)
		// Even clients watch the posts channel, odd clients the notifications
		// channel, so both hubs see load.
		if i%2 == 0 {
			go runPostsClient(*host, token, *postID, stopChan, &wg)
		} else {
			go runNotificationsClient(*host, token, stopChan, &wg)
		}
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case <-time.After(*duration):
		log.Println("⏱️  Test duration reached")
	case <-interrupt:
		log.Println("🛑 Interrupted by user")
	}

	close(stopChan)
	log.Println("Waiting for clients to disconnect...")
	wg.Wait()

	printMetrics()
}

// login authenticates and returns the access token from the auth cookie.
func login(host, username, password string) (string, error) {
	loginURL := fmt.Sprintf("http://%s/api/auth/login", host)
	payload := map[string]string{
		"username": username,
		"password": password,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(loginURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "accessToken" {
			return cookie.Value, nil
		}
	}
	return "", fmt.Errorf("login response did not set accessToken cookie")
}

func dial(host, path, token string) (*websocket.Conn, error) {
	atomic.AddInt64(&metrics.ConnectionsAttempted, 1)

	query := ""
	if token != "" {
		query = "token=" + url.QueryEscape(token)
	}
	u := url.URL{Scheme: "ws", Host: host, Path: path, RawQuery: query}

	c, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	if err != nil {
		atomic.AddInt64(&metrics.ConnectionsFailed, 1)
		atomic.AddInt64(&metrics.Errors, 1)
		return nil, err
	}

	atomic.AddInt64(&metrics.ConnectionsSuccess, 1)
	return c, nil
}

func runNotificationsClient(host, token string, stopChan <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	c, err := dial(host, "/api/ws/notifications", token)
	if err != nil {
		return
	}
	defer func() { _ = c.Close() }()

	readUntilStopped(c, stopChan)
}

func runPostsClient(host, token string, postID uint, stopChan <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	c, err := dial(host, "/api/ws/posts", token)
	if err != nil {
		return
	}
	defer func() { _ = c.Close() }()

	join, _ := json.Marshal(map[string]interface{}{
		"type":   "join_post",
		"postId": postID,
	})
	if err := c.WriteMessage(websocket.TextMessage, join); err != nil {
		atomic.AddInt64(&metrics.Errors, 1)
		return
	}

	readUntilStopped(c, stopChan)
}

func readUntilStopped(c *websocket.Conn, stopChan <-chan struct{}) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, _, err := c.ReadMessage()
			if err != nil {
				return
			}
			atomic.AddInt64(&metrics.EventsReceived, 1)
		}
	}()

	select {
	case <-stopChan:
		_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	case <-done:
	}
}

func printMetrics() {
	log.Println("\n📊 Test Results")
	log.Println("===============")
	log.Printf("Connections Attempted: %d", atomic.LoadInt64(&metrics.ConnectionsAttempted))
	log.Printf("Connections Successful: %d", atomic.LoadInt64(&metrics.ConnectionsSuccess))
	log.Printf("Connections Failed: %d", atomic.LoadInt64(&metrics.ConnectionsFailed))
	log.Printf("Events Received: %d", atomic.LoadInt64(&metrics.EventsReceived))
	log.Printf("Total Errors: %d", atomic.LoadInt64(&metrics.Errors))
}
