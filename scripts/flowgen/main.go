package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"FlowScope/internal/model"
)

// flowgen produces synthetic test inputs: either a pcap capture for the
// probe and upload paths, or a ready-made JSON batch for the analyze path.
func main() {
	mode := flag.String("mode", "pcap", "Output mode: 'pcap' or 'json'")
	outputFile := flag.String("o", "", "Output file path (default test.pcap / batch.json)")
	count := flag.Int("c", 1000, "Number of packets (pcap mode) or flows (json mode)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	switch *mode {
	case "pcap":
		path := *outputFile
		if path == "" {
			path = "test.pcap"
		}
		generatePcap(rng, path, *count)
	case "json":
		path := *outputFile
		if path == "" {
			path = "batch.json"
		}
		generateBatch(rng, path, *count)
	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

// generatePcap writes random TCP/UDP packets over a small address pool so
// the extractor aggregates them into multi-packet flows.
func generatePcap(rng *rand.Rand, path string, packetCount int) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		log.Fatalf("Failed to write pcap header: %v", err)
	}

	log.Printf("Generating %d packets into %s...", packetCount, path)
	base := time.Now().Add(-time.Minute)

	for i := 0; i < packetCount; i++ {
		srcIP := net.IP{10, 0, 0, byte(rng.Intn(8) + 1)}
		dstIP := net.IP{192, 168, 1, byte(rng.Intn(8) + 1)}
		srcPort := rng.Intn(65535-1024) + 1024
		dstPort := []int{80, 443, 53, 8080}[rng.Intn(4)]
		payloadSize := rng.Intn(1400) + 50

		eth := &layers.Ethernet{
			SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
			DstMAC:       net.HardwareAddr{0x00, 0x66, 0x77, 0x88, 0x99, 0xAA},
			EthernetType: layers.EthernetTypeIPv4,
		}
		ip := &layers.IPv4{SrcIP: srcIP, DstIP: dstIP, Version: 4, TTL: 64}

		payload := make([]byte, payloadSize)
		rng.Read(payload)

		buf := gopacket.NewSerializeBuffer()
		opts := gopacket.SerializeOptions{ComputeChecksums: true, FixLengths: true}

		if rng.Intn(4) == 0 {
			ip.Protocol = layers.IPProtocolUDP
			udp := &layers.UDP{SrcPort: layers.UDPPort(srcPort), DstPort: layers.UDPPort(dstPort)}
			udp.SetNetworkLayerForChecksum(ip)
			if err := gopacket.SerializeLayers(buf, opts, eth, ip, udp, gopacket.Payload(payload)); err != nil {
				log.Fatalf("Failed to serialize layers: %v", err)
			}
		} else {
			ip.Protocol = layers.IPProtocolTCP
			tcp := &layers.TCP{
				SrcPort: layers.TCPPort(srcPort),
				DstPort: layers.TCPPort(dstPort),
				Seq:     rng.Uint32(),
				Window:  14600,
			}
			tcp.SetNetworkLayerForChecksum(ip)
			if err := gopacket.SerializeLayers(buf, opts, eth, ip, tcp, gopacket.Payload(payload)); err != nil {
				log.Fatalf("Failed to serialize layers: %v", err)
			}
		}

		ci := gopacket.CaptureInfo{
			Timestamp:     base.Add(time.Duration(i) * 10 * time.Millisecond),
			CaptureLength: len(buf.Bytes()),
			Length:        len(buf.Bytes()),
		}
		if err := w.WritePacket(ci, buf.Bytes()); err != nil {
			log.Fatalf("Failed to write packet: %v", err)
		}
	}

	log.Printf("Successfully generated %d packets into %s.", packetCount, path)
}

// generateBatch writes a JSON batch of random classified flows plus model
// evaluations, in the envelope shape the analyze endpoint accepts.
func generateBatch(rng *rand.Rand, path string, flowCount int) {
	severities := []model.Severity{model.SeverityLow, model.SeverityMedium, model.SeverityHigh, model.SeverityCritical}

	flows := make([]model.FlowRecord, 0, flowCount)
	for i := 0; i < flowCount; i++ {
		pkts := uint64(rng.Intn(5000))
		bytes := pkts * uint64(rng.Intn(1500))
		duration := float64(rng.Intn(300)) / 10
		pktRate := 0.0
		byteRate := 0.0
		if duration > 0 {
			pktRate = float64(pkts) / duration
			byteRate = float64(bytes) / duration
		}
		anomaly := rng.Intn(10) == 0

		flows = append(flows, model.FlowRecord{
			Src:            net.IP{10, 0, 0, byte(rng.Intn(16) + 1)}.String(),
			Dst:            net.IP{192, 168, 1, byte(rng.Intn(16) + 1)}.String(),
			Proto:          []string{"TCP", "UDP"}[rng.Intn(2)],
			PktCount:       &pkts,
			ByteCount:      &bytes,
			Duration:       &duration,
			PktRate:        &pktRate,
			ByteRate:       &byteRate,
			UniqueDstPorts: uint64(rng.Intn(20)),
			Severity:       severities[rng.Intn(len(severities))],
			Confidence:     float64(rng.Intn(100)),
			IsAnomaly:      anomaly,
		})
	}

	acc, prec, stab := 85.0+rng.Float64()*10, 75.0+rng.Float64()*20, 60.0+rng.Float64()*35
	batch := &model.Batch{
		Flows: flows,
		ModelEvals: map[string]model.ModelEvalStats{
			"isolation_forest": {
				InferenceTimeSec:   rng.Float64() * 2,
				AnomaliesDetected:  flowCount / 10,
				PseudoAccuracyPct:  &acc,
				PseudoPrecisionPct: &prec,
				StabilityPct:       &stab,
			},
			"one_class_svm": {
				InferenceTimeSec:  rng.Float64() * 5,
				AnomaliesDetected: flowCount / 12,
			},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(batch); err != nil {
		log.Fatalf("Failed to encode batch: %v", err)
	}
	log.Printf("Successfully generated %d flows into %s.", flowCount, path)
}
