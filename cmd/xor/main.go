package main

import (
	"fmt"
	"log"

	"github.com/FlavioCFOliveira/GoTinn/tinn"
)

func main() {
	fmt.Println("=== XOR Training Example ===")

	// XOR cannot be solved by a single-layer perceptron. Biases are shared
	// per layer and fixed, so a constant third input gives each hidden unit
	// its own learnable threshold.
	in := 3
	hidden := 4
	out := 1

	fmt.Printf("Network architecture: %d-%d-%d\n", in, hidden, out)
	fmt.Println("Activation functions: Sigmoid (hidden), Sigmoid (output)")
	fmt.Println("Loss function: half sum of squared errors")
	fmt.Println("Optimizer: SGD with learning rate 1.0, annealed by 0.9995 per epoch")

	network, err := tinn.New(in, hidden, out, tinn.WithSeed(42))
	if err != nil {
		log.Fatalf("creating network: %v", err)
	}

	data := &tinn.Dataset{
		Samples: [][]float64{
			{0, 0, 1},
			{0, 1, 1},
			{1, 0, 1},
			{1, 1, 1},
		},
		Labels: [][]float64{
			{0},
			{1},
			{1},
			{0},
		},
	}

	trainer := &tinn.Trainer{
		Net:       network,
		Scheduler: tinn.Anneal(1.0, 0.9995),
		Epochs:    5000,
	}
	history, err := trainer.Fit(data)
	if err != nil {
		log.Fatalf("training: %v", err)
	}
	for _, s := range history {
		if s.Epoch%500 == 0 {
			fmt.Printf("Epoch %d, Error: %.6f\n", s.Epoch, s.MeanError)
		}
	}

	fmt.Println("\nTesting trained network:")
	for i := range data.Samples {
		pred, err := network.Predict(data.Samples[i])
		if err != nil {
			log.Fatalf("predicting: %v", err)
		}
		fmt.Printf("Input: %v, Predicted: %.4f, Target: %v\n",
			data.Samples[i][:2], pred[0], data.Labels[i][0])
	}
}
