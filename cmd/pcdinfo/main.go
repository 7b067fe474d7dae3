// Command pcdinfo prints the schema and decoded array sizes of a PCD file
package main

import (
	"fmt"
	"os"

	pcd "github.com/yukiyukixing/PCDLoader"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: pcdinfo <file.pcd>")
		os.Exit(2)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "pcdinfo: %v\n", err)
		os.Exit(1)
	}
	schema, err := pcd.ParseSchema(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pcdinfo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s:\n", os.Args[1])
	if schema.Version != "" {
		fmt.Printf("  version:  %s\n", schema.Version)
	}
	fmt.Printf("  encoding: %s\n", schema.Encoding)
	fmt.Printf("  width:    %d\n", schema.Width)
	fmt.Printf("  height:   %d\n", schema.Height)
	fmt.Printf("  points:   %d\n", schema.Points)
	fmt.Println("  fields:")
	for i, name := range schema.Fields {
		fmt.Printf("    %-12s", name)
		if schema.Size != nil {
			fmt.Printf(" size=%d", schema.Size[i])
		}
		if schema.Count != nil {
			fmt.Printf(" count=%d", schema.Count[i])
		}
		if schema.Type != nil {
			fmt.Printf(" type=%s", schema.Type[i])
		}
		if schema.Encoding != pcd.EncodingAscii && schema.Size != nil {
			fmt.Printf(" offset=%d", schema.RowOffset(i))
		}
		fmt.Println()
	}
	if schema.Encoding != pcd.EncodingAscii && schema.RowStride() > 0 {
		fmt.Printf("  row stride: %d bytes\n", schema.RowStride())
	}

	cloud, err := pcd.Decode(data, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pcdinfo: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("  decoded:")
	printGroup := func(name string, n, per int) {
		if n > 0 {
			fmt.Printf("    %-10s %d values (%d points)\n", name, n, n/per)
		}
	}
	printGroup("positions", len(cloud.Positions), 3)
	printGroup("normals", len(cloud.Normals), 3)
	printGroup("colors", len(cloud.Colors), 3)
	printGroup("intensity", len(cloud.Intensity), 1)
	printGroup("label", len(cloud.Label), 1)
}
