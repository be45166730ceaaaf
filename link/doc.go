// Package link runs the BR protocol over a byte-stream transport.
//
// # Overview
//
// A Receiver reads from any io.Reader (serial port, TCP socket, capture
// file), feeds every byte to a parser.Parser and hands back verified frames.
// A Client adds the request side on an io.ReadWriter:
//   - Sending frames
//   - Requesting a message by ID with a General Request
//   - Assigning a new device ID
//   - Retrying when no reply arrives
//
// # Receiving
//
//	recv, err := link.NewReceiver(port)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = recv.Run(ctx, func(f *protocol.Frame) error {
//	    fmt.Printf("id=%d payload=% x\n", f.MessageID, f.Payload)
//	    return nil
//	})
//
// Frames that fail checksum verification are skipped. Observe them with a
// callback:
//
//	recv, err := link.NewReceiver(port,
//	    link.WithChecksumErrorCallback(func(e link.ChecksumError) {
//	        fmt.Printf("bad frame id=%d stored=0x%04X calculated=0x%04X\n",
//	            e.MessageID, e.Stored, e.Calculated)
//	    }),
//	)
//
// # Requests
//
//	client, err := link.NewClient(port,
//	    link.WithDeviceID(1),
//	    link.WithReadTimeout(500*time.Millisecond),
//	    link.WithRetries(3),
//	)
//
//	f, err := client.Request(ctx, protocol.IDDeviceInformation)
//	if err != nil {
//	    var nack *link.NackError
//	    if errors.As(err, &nack) {
//	        log.Printf("device refused: %s", nack.Reason)
//	    }
//	    return err
//	}
//	info, err := protocol.ParseDeviceInformation(f.Payload)
//
// Read deadlines are armed only when the transport implements
// SetReadDeadline(time.Time) error, as net.Conn and most serial port
// libraries do. Without one, a request waits until the transport returns
// io.EOF or the context is cancelled.
//
// # Logging
//
// Any type with Debug, Info and Error methods taking a message and
// key-value pairs can be passed to WithLogger:
//
//	client, err := link.NewClient(port, link.WithLogger(myLogger))
//
// # Thread Safety
//
// Receiver and Client are not safe for concurrent use. Use one per
// transport.
package link
