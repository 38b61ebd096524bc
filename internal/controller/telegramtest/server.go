// Package telegramtest поддельный Bot API для тестов обработчиков
package telegramtest

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Call один запрос к Bot API
type Call struct {
	Method string
	Fields map[string]string
	Files  map[string]string // поле -> имя файла
}

// Server записывает вызовы методов Bot API и отвечает успехом
type Server struct {
	*httptest.Server

	mu    sync.Mutex
	calls []Call
}

// NewServer запускает сервер; закрывается вызывающим
func NewServer() *Server {
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	call := Call{Method: method, Fields: map[string]string{}, Files: map[string]string{}}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for k, v := range r.MultipartForm.Value {
			call.Fields[k] = v[0]
		}
		for k, v := range r.MultipartForm.File {
			call.Files[k] = v[0].Filename
		}
	case mediaType == "application/json":
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for k, v := range body {
			if str, ok := v.(string); ok {
				call.Fields[k] = str
				continue
			}
			raw, _ := json.Marshal(v)
			call.Fields[k] = string(raw)
		}
	default:
		if err := r.ParseForm(); err == nil {
			for k, v := range r.PostForm {
				call.Fields[k] = v[0]
			}
		}
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch method {
	case "answerCallbackQuery", "setMyCommands", "deleteMessage":
		fmt.Fprint(w, `{"ok":true,"result":true}`)
	default:
		fmt.Fprint(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`)
	}
}

// Calls все вызовы по порядку
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Last последний вызов метода; ok=false, если его не было
func (s *Server) Last(method string) (Call, bool) {
	calls := s.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method {
			return calls[i], true
		}
	}
	return Call{}, false
}

// Reset забывает записанные вызовы
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}
