package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vskvj3/linkd/internal/utils"
)

type CommandHandler struct {
	Database *Database
}

// Create a new CommandHandler instance
func NewCommandHandler(db *Database) *CommandHandler {
	return &CommandHandler{Database: db}
}

func ok() map[string]interface{} {
	return map[string]interface{}{"status": "OK"}
}

func okValue(value interface{}) map[string]interface{} {
	return map[string]interface{}{"status": "OK", "value": value}
}

func notFound() map[string]interface{} {
	return map[string]interface{}{"status": "NOT_FOUND"}
}

// HandleCommand executes one request map and returns the response map.
// Errors are for the caller to report to the client.
func (h *CommandHandler) HandleCommand(request map[string]interface{}) (map[string]interface{}, error) {
	command, isString := request["command"].(string)
	if !isString {
		return nil, errors.New("invalid or missing 'command' field")
	}
	command = strings.ToUpper(command)

	switch command {
	case "PING":
		return map[string]interface{}{"status": "OK", "message": "PONG"}, nil

	case "ECHO":
		message, isString := request["message"].(string)
		if !isString {
			return nil, errors.New("ECHO requires a 'message' field")
		}
		return map[string]interface{}{"status": "OK", "message": message}, nil

	case "SET":
		key, value, err := keyValue(command, request)
		if err != nil {
			return nil, err
		}
		ttlMs := int64(0)
		if exp, present := request["exp"]; present {
			if ttlMs, err = utils.ToInt(exp); err != nil {
				return nil, fmt.Errorf("invalid TTL: %w", err)
			}
		}
		if err := h.Database.Set(key, value, ttlMs); err != nil {
			return nil, err
		}
		return ok(), nil

	case "GET":
		key, err := keyOf(command, request)
		if err != nil {
			return nil, err
		}
		value, err := h.Database.Get(key)
		if errors.Is(err, ErrKeyNotFound) {
			return notFound(), nil
		}
		if err != nil {
			return nil, err
		}
		return okValue(value), nil

	case "INCR":
		key, err := keyOf(command, request)
		if err != nil {
			return nil, err
		}
		offset, err := intField(command, request, "offset")
		if err != nil {
			return nil, err
		}
		newValue, err := h.Database.Incr(key, offset)
		if err != nil {
			return nil, err
		}
		return okValue(newValue), nil

	case "DEL":
		key, err := keyOf(command, request)
		if err != nil {
			return nil, err
		}
		if !h.Database.Del(key) {
			return notFound(), nil
		}
		return ok(), nil

	case "PUSH", "RPUSH", "LPUSH":
		key, value, err := keyValue(command, request)
		if err != nil {
			return nil, err
		}
		push := h.Database.RPush
		if command == "LPUSH" {
			push = h.Database.LPush
		}
		length, err := push(key, value)
		if err != nil {
			return nil, err
		}
		return okValue(length), nil

	case "LPOP", "RPOP":
		key, err := keyOf(command, request)
		if err != nil {
			return nil, err
		}
		pop := h.Database.LPop
		if command == "RPOP" {
			pop = h.Database.RPop
		}
		value, err := pop(key)
		if errors.Is(err, ErrKeyNotFound) {
			return notFound(), nil
		}
		if err != nil {
			return nil, err
		}
		return okValue(value), nil

	case "LLEN":
		key, err := keyOf(command, request)
		if err != nil {
			return nil, err
		}
		length, err := h.Database.LLen(key)
		if err != nil {
			return nil, err
		}
		return okValue(length), nil

	case "LRANGE":
		key, err := keyOf(command, request)
		if err != nil {
			return nil, err
		}
		start, err := intField(command, request, "start")
		if err != nil {
			return nil, err
		}
		stop, err := intField(command, request, "stop")
		if err != nil {
			return nil, err
		}
		values, err := h.Database.LRange(key, start, stop)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"status": "OK", "values": values}, nil

	case "LINDEX":
		key, err := keyOf(command, request)
		if err != nil {
			return nil, err
		}
		index, err := intField(command, request, "index")
		if err != nil {
			return nil, err
		}
		value, err := h.Database.LIndex(key, index)
		if errors.Is(err, ErrKeyNotFound) || errors.Is(err, ErrIndexOutOfRange) {
			return notFound(), nil
		}
		if err != nil {
			return nil, err
		}
		return okValue(value), nil

	case "LSET":
		key, value, err := keyValue(command, request)
		if err != nil {
			return nil, err
		}
		index, err := intField(command, request, "index")
		if err != nil {
			return nil, err
		}
		if err := h.Database.LSet(key, index, value); err != nil {
			return nil, err
		}
		return ok(), nil

	case "LINSERT":
		key, value, err := keyValue(command, request)
		if err != nil {
			return nil, err
		}
		pivot, isString := request["pivot"].(string)
		if !isString {
			return nil, errors.New("LINSERT requires a 'pivot' field")
		}
		where, _ := request["where"].(string)
		var before bool
		switch strings.ToUpper(where) {
		case "BEFORE":
			before = true
		case "AFTER":
		default:
			return nil, errors.New("LINSERT 'where' must be BEFORE or AFTER")
		}
		length, err := h.Database.LInsert(key, before, pivot, value)
		if err != nil {
			return nil, err
		}
		return okValue(length), nil

	case "LREM":
		key, value, err := keyValue(command, request)
		if err != nil {
			return nil, err
		}
		count, err := intField(command, request, "count")
		if err != nil {
			return nil, err
		}
		removed, err := h.Database.LRem(key, count, value)
		if err != nil {
			return nil, err
		}
		return okValue(removed), nil

	default:
		return nil, fmt.Errorf("unknown command '%s'", command)
	}
}

// IsWriteCommand reports whether command changes the database.
func IsWriteCommand(command string) bool {
	switch strings.ToUpper(command) {
	case "SET", "INCR", "DEL", "PUSH", "RPUSH", "LPUSH", "LPOP", "RPOP", "LSET", "LINSERT", "LREM":
		return true
	}
	return false
}

func keyOf(command string, request map[string]interface{}) (string, error) {
	key, isString := request["key"].(string)
	if !isString {
		return "", fmt.Errorf("%s requires a 'key' field", command)
	}
	return key, nil
}

func keyValue(command string, request map[string]interface{}) (string, string, error) {
	key, keyOk := request["key"].(string)
	value, valueOk := request["value"].(string)
	if !keyOk || !valueOk {
		return "", "", fmt.Errorf("%s requires 'key', 'value' fields", command)
	}
	return key, value, nil
}

func intField(command string, request map[string]interface{}, field string) (int, error) {
	raw, present := request[field]
	if !present {
		return 0, fmt.Errorf("%s requires a '%s' field (integer)", command, field)
	}
	n, err := utils.ToInt(raw)
	if err != nil {
		return 0, fmt.Errorf("%s '%s': %w", command, field, err)
	}
	return int(n), nil
}
