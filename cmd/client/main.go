package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vskvj3/linkd/internal/health"
)

// argParser parses and validates the command and its arguments
func argParser(input string) (map[string]interface{}, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no command entered")
	}

	command := strings.ToUpper(parts[0])
	request := map[string]interface{}{
		"command": command,
	}
	args := parts[1:]

	need := func(n int, usage string) error {
		if len(args) != n {
			return fmt.Errorf("usage: %s %s", command, usage)
		}
		return nil
	}

	var err error
	switch command {
	case "PING":
		err = need(0, "")

	case "ECHO":
		if len(args) == 0 {
			return nil, fmt.Errorf("ECHO requires a message")
		}
		request["message"] = strings.Join(args, " ")

	case "SET":
		if len(args) != 2 && len(args) != 3 {
			return nil, fmt.Errorf("usage: SET key value [ttl_ms]")
		}
		request["key"], request["value"] = args[0], args[1]
		if len(args) == 3 {
			request["exp"] = args[2]
		}

	case "GET", "DEL", "LPOP", "RPOP", "LLEN":
		err = need(1, "key")
		if err == nil {
			request["key"] = args[0]
		}

	case "INCR":
		err = need(2, "key offset")
		if err == nil {
			request["key"], request["offset"] = args[0], args[1]
		}

	case "PUSH", "LPUSH", "RPUSH":
		err = need(2, "key value")
		if err == nil {
			request["key"], request["value"] = args[0], args[1]
		}

	case "LRANGE":
		err = need(3, "key start stop")
		if err == nil {
			request["key"], request["start"], request["stop"] = args[0], args[1], args[2]
		}

	case "LINDEX":
		err = need(2, "key index")
		if err == nil {
			request["key"], request["index"] = args[0], args[1]
		}

	case "LSET":
		err = need(3, "key index value")
		if err == nil {
			request["key"], request["index"], request["value"] = args[0], args[1], args[2]
		}

	case "LINSERT":
		err = need(4, "key BEFORE|AFTER pivot value")
		if err == nil {
			request["key"], request["where"], request["pivot"], request["value"] = args[0], args[1], args[2], args[3]
		}

	case "LREM":
		err = need(3, "key count value")
		if err == nil {
			request["key"], request["count"], request["value"] = args[0], args[1], args[2]
		}

	default:
		return nil, fmt.Errorf("unknown command: %s", command)
	}
	if err != nil {
		return nil, err
	}
	return request, nil
}

// printResponse renders a server response map.
func printResponse(serverResponse map[string]interface{}) {
	status, _ := serverResponse["status"].(string)
	switch status {
	case "OK":
		if message, ok := serverResponse["message"].(string); ok {
			fmt.Println("Server:", message)
		} else if values, ok := serverResponse["values"].([]interface{}); ok {
			if len(values) == 0 {
				fmt.Println("Server: (empty list)")
			}
			for i, v := range values {
				fmt.Printf("%d) %v\n", i+1, v)
			}
		} else if value, ok := serverResponse["value"]; ok {
			fmt.Println("Server:", value)
		} else {
			fmt.Println("Server: OK")
		}
	case "NOT_FOUND":
		fmt.Println("Server: (nil)")
	case "ERROR":
		fmt.Println("Server Error:", serverResponse["message"])
	default:
		fmt.Println("Unexpected server response:", serverResponse)
	}
}

// checkHealth asks the health service whether the list server is serving.
func checkHealth(ctx context.Context, client *health.Client) (string, error) {
	serving, err := client.Check(ctx)
	if err != nil {
		return "", err
	}
	if serving {
		return "SERVING", nil
	}
	return "NOT_SERVING", nil
}

func main() {
	addr := flag.String("addr", "localhost:6379", "Address of the list server")
	healthAddr := flag.String("health", "", "Address of the gRPC health service; print its status and exit")
	flag.Parse()

	if *healthAddr != "" {
		client, err := health.NewClient(*healthAddr)
		if err != nil {
			fmt.Println("Error connecting to health service:", err)
			os.Exit(1)
		}
		status, err := checkHealth(context.Background(), client)
		client.Close()
		if err != nil {
			fmt.Println("Health check failed:", err)
			os.Exit(1)
		}
		fmt.Println(status)
		return
	}

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		fmt.Println("Error connecting to server:", err)
		return
	}
	defer conn.Close()

	fmt.Println("Connected to server. Type commands (e.g., PING, RPUSH key value, LRANGE key 0 -1) and press Enter.")
	reader := bufio.NewReader(os.Stdin)
	encoder := msgpack.NewEncoder(conn)
	decoder := msgpack.NewDecoder(conn)
	decoder.UseLooseInterfaceDecoding(true)

	for {
		fmt.Print(">> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}

		request, err := argParser(strings.TrimSpace(input))
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}

		if err := encoder.Encode(request); err != nil {
			fmt.Println("Error sending to server:", err)
			return
		}

		var serverResponse map[string]interface{}
		if err := decoder.Decode(&serverResponse); err != nil {
			fmt.Println("Error reading from server:", err)
			return
		}
		printResponse(serverResponse)
	}
}
