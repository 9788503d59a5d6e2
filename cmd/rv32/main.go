package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/madhavgautam402/rv32/cpu"
	"github.com/madhavgautam402/rv32/emulator"
	"github.com/madhavgautam402/rv32/image"
)

func main() {
	var compile string
	var execute string
	var memfile string
	var output string
	var save bool
	var ticks int
	var verbose bool

	flag.StringVar(&compile, "c", "", "assembly file to compile")
	flag.StringVar(&execute, "x", "", "instruction image to execute")
	flag.StringVar(&memfile, "m", "", "initial memory image")
	flag.StringVar(&output, "o", "-", "instruction image output")
	flag.BoolVar(&save, "s", false, "Save the instruction image, do not execute")
	flag.IntVar(&ticks, "t", 100000, "Tick budget")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var words []uint32

	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		words = prog.Words

		if save {
			ouf := os.Stdout
			if output != "-" {
				ouf, err = os.Create(output)
				if err != nil {
					log.Fatalf("%v: %v", output, err)
				}
				defer ouf.Close()
			}
			if err = image.WriteText(ouf, words); err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			return
		}
	}

	if len(execute) != 0 {
		inf, err := os.Open(execute)
		if err != nil {
			log.Fatalf("%v: %v", execute, err)
		}
		defer inf.Close()

		words, err = image.ReadText(inf)
		if err != nil {
			log.Fatalf("%v: %v", execute, err)
		}
	}

	if len(words) == 0 {
		log.Fatalf("%v: nothing to run; use -c or -x", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Words = words
	emu.Verbose = verbose
	emu.Reset()

	if len(memfile) != 0 {
		inf, err := os.Open(memfile)
		if err != nil {
			log.Fatalf("%v: %v", memfile, err)
		}
		defer inf.Close()

		memory, err := image.ReadMemory(inf)
		if err != nil {
			log.Fatalf("%v: %v", memfile, err)
		}
		for addr, value := range memory {
			emu.WriteByte(addr, value)
		}
	}

	if _, err := emu.Run(ticks); err != nil {
		log.Fatal(err)
	}

	fmt.Print(emu.Cpu)
}
