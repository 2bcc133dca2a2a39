// Command generate_codes writes a sample UPC-A code list for trying out the
// service. Usage: go run cmd/generate_codes/main.go [-n 100] [-invalid 0.1] [-out codes.txt]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/dkotenko/labelforge/internal/upc"
)

func main() {
	count := flag.Int("n", 100, "number of codes to generate")
	invalidRatio := flag.Float64("invalid", 0, "fraction of deliberately malformed lines, 0..1")
	outPath := flag.String("out", "codes.txt", "output file path, - for stdout")
	seed := flag.Int64("seed", 0, "random seed, 0 for nondeterministic")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	if *seed == 0 {
		rng = rand.New(rand.NewSource(int64(os.Getpid())))
	}

	out := os.Stdout
	if *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	defer w.Flush()

	for i := 0; i < *count; i++ {
		if rng.Float64() < *invalidRatio {
			fmt.Fprintln(w, malformedLine(rng))
			continue
		}

		code := randomCode(rng)
		fmt.Fprintln(w, code)
	}

	if *outPath != "-" {
		log.Printf("Wrote %d codes to %s", *count, *outPath)
	}
}

// randomCode builds a random UPC-A number with a correct check digit.
func randomCode(rng *rand.Rand) string {
	digits := make([]byte, upc.CodeLength-1)
	for i := range digits {
		digits[i] = byte('0' + rng.Intn(10))
	}

	check, err := upc.CheckDigit(string(digits))
	if err != nil {
		log.Fatalf("Failed to compute check digit: %v", err)
	}
	return string(digits) + string(check)
}

func malformedLine(rng *rand.Rand) string {
	switch rng.Intn(3) {
	case 0:
		return randomCode(rng)[:rng.Intn(upc.CodeLength)]
	case 1:
		return "SKU-" + randomCode(rng)[:8]
	default:
		code := []byte(randomCode(rng))
		code[rng.Intn(len(code))] = 'X'
		return string(code)
	}
}
