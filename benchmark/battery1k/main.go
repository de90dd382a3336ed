package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"battwatch.xyz/battery-health-service/pkg/stream"
	"battwatch.xyz/battery-health-service/pkg/view"
)

var maxBatteries int = 1000
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	// keep one stream open for the whole run, reconciling events into a
	// client-side cache the same way a real viewer would
	cache := view.NewCache()
	streamDone := make(chan int)
	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://%s/stream", httpHostPort), nil)
	if err != nil {
		log.Fatal("Failed to connect to stream:", err)
	}
	go func() {
		received := 0
		for {
			var event stream.Event
			if err := conn.ReadJSON(&event); err != nil {
				streamDone <- received
				return
			}
			cache.Apply(event)
			received++
		}
	}()

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	batteryIDs := make([]uint, maxBatteries)
	for i := range maxBatteries {
		wg.Add(1)
		go func() {
			batteryIDs[i] = createBattery(i)
			fmt.Printf("\rcreated battery %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rcreated %v batteries: used time=%v seconds, throughput=%v action/second\n",
		maxBatteries, usedTime.Seconds(), float64(maxBatteries)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := range maxBatteries {
		wg.Add(1)
		go func() {
			doAction(batteryIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v batteries: used time=%v seconds, throughput=%v action/second\n",
		maxBatteries, usedTime.Seconds(), float64(maxBatteries*3)/usedTime.Seconds(),
	)

	conn.Close()
	fmt.Printf("stream delivered %v events during the run, reconciled view holds %v batteries\n",
		<-streamDone, cache.Len())
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func postJSON(url string, payload any) *http.Response {
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	return resp
}

func createBattery(index int) uint {
	resp := postJSON(fmt.Sprintf("http://%s/batteries", httpHostPort), map[string]any{
		"name":            fmt.Sprintf("Bench Battery %v", index),
		"serialNumber":    "BENCH-" + uuid.NewString(),
		"initialCapacity": 2000 + rnd.Intn(4000),
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		panic(fmt.Sprintf("create battery failed: %v %s", resp.StatusCode, body))
	}

	var battery struct {
		ID uint `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&battery); err != nil {
		panic(err)
	}
	return battery.ID
}

func doAction(batteryID uint) {
	actions := []func(){
		genAppendHistoryAction(batteryID),
		genUpsertUsageAction(batteryID),
		genGetHistoryAction(batteryID),
	}
	actionNames := []string{
		"AppendHistory",
		"UpsertUsage",
		"GetHistory",
	}
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for battery %v", actionNames[index], batteryID)
		time.Sleep(time.Duration(100+rnd.Int31n(1000)) * time.Millisecond)
	}
}

func genAppendHistoryAction(batteryID uint) func() {
	return func() {
		resp := postJSON(fmt.Sprintf("http://%s/batteries/%v/history", httpHostPort, batteryID), map[string]any{
			"timestamp":        time.Now().Format(time.RFC3339),
			"capacity":         2000 + rnd.Intn(4000),
			"healthPercentage": rndFloat64(50.0, 100.0, 2),
			"cycleCount":       rnd.Intn(1000),
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			fmt.Printf("\nresponse status code != 201: %v\n", resp.StatusCode)
		}
	}
}

func genUpsertUsageAction(batteryID uint) func() {
	return func() {
		jsonData, _ := json.Marshal(map[string]any{
			"chargingFrequency":    rndFloat64(1.0, 14.0, 2),
			"dischargeDepth":       rndFloat64(10.0, 100.0, 2),
			"chargeDuration":       rndFloat64(0.5, 8.0, 2),
			"operatingTemperature": rndFloat64(10.0, 45.0, 2),
		})
		req, _ := http.NewRequest(http.MethodPut,
			fmt.Sprintf("http://%s/batteries/%v/usage", httpHostPort, batteryID), bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
		}
	}
}

func genGetHistoryAction(batteryID uint) func() {
	return func() {
		resp, err := http.Get(fmt.Sprintf("http://%s/batteries/%v/history", httpHostPort, batteryID))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
		}
	}
}
