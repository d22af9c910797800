// Package pcapflow turns capture files into FlowRecords by grouping packets
// into bidirectional flows and deriving per-flow features.
package pcapflow

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"FlowScope/internal/model"
)

// flowState accumulates one bidirectional flow while reading a capture.
type flowState struct {
	src, dst       string // direction of the first packet seen
	hasTCP, hasUDP bool
	pkts, bytes    uint64
	first, last    time.Time
	srcPorts       map[uint16]struct{}
	dstPorts       map[uint16]struct{}
	payloadTotal   uint64
	payloadCount   uint64
}

// ExtractFile reads a pcap file and returns one FlowRecord per bidirectional
// flow, in first-seen order. Packets that are not IPv4 TCP/UDP are skipped.
func ExtractFile(path string) ([]model.FlowRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture file: %w", err)
	}
	defer f.Close()

	r, err := pcapgo.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read pcap header: %w", err)
	}

	table := make(map[string]*flowState)
	var order []string

	source := gopacket.NewPacketSource(r, r.LinkType())
	for packet := range source.Packets() {
		key, state := classifyPacket(packet)
		if state == nil {
			continue
		}
		existing, ok := table[key]
		if !ok {
			table[key] = state
			order = append(order, key)
			continue
		}
		merge(existing, state)
	}

	flows := make([]model.FlowRecord, 0, len(order))
	for _, key := range order {
		flows = append(flows, emit(table[key]))
	}
	return flows, nil
}

// classifyPacket parses one packet into a single-packet flowState and its
// bidirectional flow key. Returns a nil state for packets to skip.
func classifyPacket(packet gopacket.Packet) (string, *flowState) {
	ipLayer := packet.Layer(layers.LayerTypeIPv4)
	if ipLayer == nil {
		return "", nil
	}
	ip := ipLayer.(*layers.IPv4)

	state := &flowState{
		src:      ip.SrcIP.String(),
		dst:      ip.DstIP.String(),
		pkts:     1,
		srcPorts: make(map[uint16]struct{}),
		dstPorts: make(map[uint16]struct{}),
	}

	var srcPort, dstPort uint16
	if l := packet.Layer(layers.LayerTypeTCP); l != nil {
		tcp := l.(*layers.TCP)
		srcPort, dstPort = uint16(tcp.SrcPort), uint16(tcp.DstPort)
		state.hasTCP = true
	} else if l := packet.Layer(layers.LayerTypeUDP); l != nil {
		udp := l.(*layers.UDP)
		srcPort, dstPort = uint16(udp.SrcPort), uint16(udp.DstPort)
		state.hasUDP = true
	} else {
		return "", nil
	}
	state.srcPorts[srcPort] = struct{}{}
	state.dstPorts[dstPort] = struct{}{}

	if meta := packet.Metadata(); meta != nil {
		state.first, state.last = meta.Timestamp, meta.Timestamp
		state.bytes = uint64(meta.Length)
	}
	if app := packet.ApplicationLayer(); app != nil {
		state.payloadTotal = uint64(len(app.Payload()))
		state.payloadCount = 1
	}

	// Both directions of a conversation share one key.
	a, b := state.src, state.dst
	if b < a {
		a, b = b, a
	}
	proto := "UDP"
	if state.hasTCP {
		proto = "TCP"
	}
	return a + "|" + b + "|" + proto, state
}

// merge folds a single-packet state into the accumulated flow. Port sets
// follow the flow's canonical direction, so reply packets count their
// source port as a destination port of the flow.
func merge(flow, pkt *flowState) {
	flow.pkts += pkt.pkts
	flow.bytes += pkt.bytes
	flow.hasTCP = flow.hasTCP || pkt.hasTCP
	flow.hasUDP = flow.hasUDP || pkt.hasUDP
	flow.payloadTotal += pkt.payloadTotal
	flow.payloadCount += pkt.payloadCount
	if pkt.first.Before(flow.first) {
		flow.first = pkt.first
	}
	if pkt.last.After(flow.last) {
		flow.last = pkt.last
	}

	forward := pkt.src == flow.src
	for p := range pkt.srcPorts {
		if forward {
			flow.srcPorts[p] = struct{}{}
		} else {
			flow.dstPorts[p] = struct{}{}
		}
	}
	for p := range pkt.dstPorts {
		if forward {
			flow.dstPorts[p] = struct{}{}
		} else {
			flow.srcPorts[p] = struct{}{}
		}
	}
}

// emit derives the FlowRecord features from an accumulated flow.
func emit(f *flowState) model.FlowRecord {
	proto := "OTHER"
	switch {
	case f.hasTCP:
		proto = "TCP"
	case f.hasUDP:
		proto = "UDP"
	}

	duration := round(f.last.Sub(f.first).Seconds(), 3)
	pktRate, byteRate := 0.0, 0.0
	if duration > 0 {
		pktRate = round(float64(f.pkts)/duration, 2)
		byteRate = round(float64(f.bytes)/duration, 2)
	}
	avgPayload := 0.0
	if f.payloadCount > 0 {
		avgPayload = round(float64(f.payloadTotal)/float64(f.payloadCount), 2)
	}

	pkts, bytes := f.pkts, f.bytes
	return model.FlowRecord{
		Src:            f.src,
		Dst:            f.dst,
		Proto:          proto,
		PktCount:       &pkts,
		ByteCount:      &bytes,
		Duration:       &duration,
		PktRate:        &pktRate,
		ByteRate:       &byteRate,
		AvgPayloadSize: &avgPayload,
		UniqueSrcPorts: uint64(len(f.srcPorts)),
		UniqueDstPorts: uint64(len(f.dstPorts)),
	}
}

func round(x float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	return math.Round(x*pow) / pow
}
