// Лаунчер для локального запуска: поднимает сервер BookCorner на in-memory
// хранилищах и собирает CLI-клиент bookcorner.
//
//	go run launcher.go
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"
)

const healthURL = "http://localhost:8080/health"

func main() {
	fmt.Println("Запуск BookCorner...")

	clientName := "bookcorner"
	if runtime.GOOS == "windows" {
		clientName = "bookcorner.exe"
	}

	// без внешних баз, если не сказано иное
	setDefaultEnv("DB_DRIVER", "memory")
	setDefaultEnv("SESSION_STORE", "memory")
	if os.Getenv("SESSION_SECRET") == "" {
		os.Setenv("SESSION_SECRET", randomSecret())
	}

	// запускаем сервер на фоне
	server := exec.Command("go", "run", "./cmd/server")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr
	server.Env = os.Environ()

	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	if err := waitHealthy(30 * time.Second); err != nil {
		fmt.Printf("Сервер не поднялся: %v\n", err)
		_ = server.Process.Kill()
		return
	}

	// собираем клиента
	if _, err := os.Stat(clientName); os.IsNotExist(err) {
		fmt.Println("Сборка клиента...")
		build := exec.Command("go", "build", "-o", clientName, "./cmd/bookcorner")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			fmt.Printf("Ошибка сборки клиента: %v\n", err)
		}
	}

	fmt.Println("Сервер запущен: http://localhost:8080")
	if runtime.GOOS == "windows" {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: .\\bookcorner.exe articles list")
	} else {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: ./bookcorner articles list")
	}

	_ = server.Wait()
}

func setDefaultEnv(key, val string) {
	if os.Getenv(key) == "" {
		os.Setenv(key, val)
	}
}

// randomSecret — секрет подписи cookie на время одного запуска.
func randomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// waitHealthy опрашивает /health, пока сервер не ответит 200.
func waitHealthy(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: time.Second}
	for time.Now().Before(deadline) {
		res, err := client.Get(healthURL)
		if err == nil {
			res.Body.Close()
			if res.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(300 * time.Millisecond)
	}
	return fmt.Errorf("нет ответа от %s за %s", healthURL, timeout)
}
