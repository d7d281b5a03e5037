package main

import (
	"fmt"
	"log"

	"example.com/ftracker/internal/training"
)

type sensorPackage struct {
	code string
	data []float64
}

var packages = []sensorPackage{
	{training.CodeSwimming, []float64{720, 1, 80, 25, 40}},
	{training.CodeRunning, []float64{15000, 1, 75}},
	{training.CodeWalking, []float64{9000, 1, 75, 180}},
}

func main() {
	for _, pkg := range packages {
		info, err := training.Compute(pkg.code, pkg.data)
		if err != nil {
			log.Fatalf("failed to read package %s: %v", pkg.code, err)
		}
		fmt.Println(info.Message())
	}
}
