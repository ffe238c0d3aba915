package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket bağlantı sabitleri
const (
	// writeWait: Bir mesajı yazmak için maksimum bekleme süresi.
	writeWait = 10 * time.Second

	// pongWait: Sunucudan pong beklenen maksimum süre.
	// Bu sürede pong gelmezse bağlantı kopmuş sayılır ve reconnect başlar.
	pongWait = 90 * time.Second

	// pingPeriod: Sunucuya ping gönderme sıklığı. pongWait'ten küçük olmalı.
	pingPeriod = 30 * time.Second

	// maxMessageSize: Sunucudan gelebilecek maksimum mesaj boyutu (byte).
	maxMessageSize = 4096

	// Reconnect backoff sınırları: 1s'den başlar, her denemede ikiye
	// katlanır, 30s'de sabitlenir. Başarılı bağlantı sayacı sıfırlar.
	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

// State, stream'in bağlantı durumu.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Scope, stream'in abone olacağı görüntüleme bağlamı.
//
// Her aktif görüntüleme bağlamı için TEK stream açılır: bağlam değişince
// (başka sipariş izlenecek, sayfa terk edildi) mevcut stream kapatılır ve
// yenisi açılır — abonelik güncellenmeye çalışılmaz, duplicate bağlantı
// fan-out'u olmaz.
type Scope struct {
	OrderID string // İzlenen sipariş ID'si; boşsa sipariş aboneliği yok
	Admin   bool   // true ise global admin feed'ine de abone olunur
}

// Stream, backend'e kurulan tek bir gerçek zamanlı bağlantıyı temsil eder.
//
// Teslim garantisi YOK: bağlantı kopması sırasında kaçan event'ler kuyruğa
// alınmaz, tekrar istenmez. Tek bir invalidation'ın kaybı kabul edilebilir —
// cache TTL'i ve bir sonraki navigasyon zaten yeniden senkronize eder.
// Stream best-effort tazelik sağlar, delivery guarantee değil.
type Stream struct {
	url         string
	scope       Scope
	invalidator Invalidator
	dialer      *websocket.Dialer

	mu    sync.Mutex // conn yazmalarını ve state'i korur
	conn  *websocket.Conn
	state State
}

// NewStream, verilen scope için bir Stream oluşturur. Bağlantı Run ile başlar.
func NewStream(url string, scope Scope, invalidator Invalidator) *Stream {
	return &Stream{
		url:         url,
		scope:       scope,
		invalidator: invalidator,
		dialer:      &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		state:       StateDisconnected,
	}
}

// State, mevcut bağlantı durumunu döner.
func (s *Stream) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run, bağlantı döngüsünü çalıştırır: dial → subscribe → read loop →
// kopunca backoff ile tekrar dial. ctx iptal edilene kadar döner —
// caller `go stream.Run(ctx)` ile başlatır, bağlamı terk ederken
// ctx'i cancel eder.
func (s *Stream) Run(ctx context.Context) {
	backoff := minBackoff

	for {
		if ctx.Err() != nil {
			return
		}

		s.setState(StateConnecting)

		conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
		if err != nil {
			s.setState(StateDisconnected)
			if ctx.Err() != nil {
				return
			}
			log.Printf("[ws] dial %s failed, retrying in %s: %v", s.url, backoff, err)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return
			}
			if backoff *= 2; backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		s.attach(conn)
		backoff = minBackoff

		// ctx iptalinde read loop'u uyandırmak için bağlantıyı kapat —
		// ReadMessage ancak conn kapanınca hata ile döner.
		closeOnCancel := context.AfterFunc(ctx, func() { conn.Close() })

		if err := s.subscribe(); err != nil {
			log.Printf("[ws] subscribe failed: %v", err)
		} else {
			s.readLoop(ctx, conn)
		}

		closeOnCancel()
		s.detach(conn)
	}
}

// Close, bağlantıyı kapatır. Run ctx iptali ile zaten sonlanır; Close,
// read loop'u beklemeden bağlantıyı düşürmek isteyen caller'lar içindir.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	s.state = StateDisconnected
}

// subscribe, bağlantı kurulduğunda scope'un gerektirdiği abonelikleri gönderir.
func (s *Stream) subscribe() error {
	if s.scope.OrderID != "" {
		err := s.sendEvent(Event{
			Op:   OpJoinOrder,
			Data: JoinOrderData{OrderID: s.scope.OrderID},
		})
		if err != nil {
			return err
		}
	}

	if s.scope.Admin {
		if err := s.sendEvent(Event{Op: OpJoinAdmin}); err != nil {
			return err
		}
	}

	return nil
}

// readLoop, sunucudan gelen event'leri okur ve dispatch eder.
// Bağlantı kopana veya ctx iptal edilene kadar bloklar.
func (s *Stream) readLoop(ctx context.Context, conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)

	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("[ws] failed to set read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Ping ticker ayrı goroutine'de — gorilla/websocket aynı anda tek
	// yazma destekler, sendEvent ile çakışmasın diye writeMessage mutex'li.
	pingDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.writeMessage(conn, websocket.PingMessage, nil); err != nil {
					return
				}
			case <-pingDone:
				return
			}
		}
	}()
	defer close(pingDone)

	for {
		_, rawMessage, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] unexpected close: %v", err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(rawMessage, &event); err != nil {
			log.Printf("[ws] invalid message from server: %v", err)
			continue
		}

		s.dispatch(event)
	}
}

// dispatch, inbound event'i türüne göre Invalidator çağrılarına çevirir.
//
// order_status_updated: siparişin kendi cache'i + "benim siparişlerim"
// listeleri düşer (listedeki status da bayatlamış olabilir).
//
// order_updated: admin listesi + siparişin kendisi + "benim siparişlerim"
// düşer — koleksiyon değişti, hangi listenin etkilendiğini client bilemez.
//
// Bilinmeyen op veya bozuk payload loglanıp atlanır — stream asla
// düşmez, bir sonraki event normal işlenir.
func (s *Stream) dispatch(event Event) {
	switch event.Op {
	case OpOrderStatusChanged:
		var data OrderStatusChangedData
		if !decodeData(event, &data) || data.OrderID == "" {
			log.Printf("[ws] order_status_updated with bad payload, skipping")
			return
		}
		s.invalidator.InvalidateOrder(data.OrderID)
		s.invalidator.InvalidateMyOrders()

	case OpOrderCollectionChanged:
		var data OrderCollectionChangedData
		if !decodeData(event, &data) {
			log.Printf("[ws] order_updated with bad payload, skipping")
			return
		}
		s.invalidator.InvalidateAdminOrders()
		s.invalidator.InvalidateMyOrders()
		if data.OrderID != "" {
			s.invalidator.InvalidateOrder(data.OrderID)
		}

	default:
		log.Printf("[ws] unknown op from server: %s", event.Op)
	}
}

// decodeData, event.Data'yı (any) hedef struct'a çevirir.
// JSON roundtrip en güvenli yol — Data'nın runtime tipi map[string]any'dir,
// doğrudan cast edilemez.
func decodeData(event Event, out any) bool {
	dataBytes, err := json.Marshal(event.Data)
	if err != nil {
		return false
	}
	return json.Unmarshal(dataBytes, out) == nil
}

// sendEvent, sunucuya tek bir event gönderir.
func (s *Stream) sendEvent(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return websocket.ErrCloseSent
	}

	return s.writeMessage(conn, websocket.TextMessage, data)
}

// writeMessage, WebSocket'e mesaj yazar (mutex ile korunur).
// gorilla/websocket conn'a aynı anda birden fazla yazma YASAK.
func (s *Stream) writeMessage(conn *websocket.Conn, messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(messageType, data)
}

// setState, stream state'ini mutex koruması altında günceller.
func (s *Stream) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// attach, yeni kurulan bağlantıyı kaydeder ve state'i CONNECTED yapar.
func (s *Stream) attach(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn = conn
	s.state = StateConnected
}

// detach, kopan bağlantıyı temizler ve state'i DISCONNECTED yapar.
func (s *Stream) detach(conn *websocket.Conn) {
	conn.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == conn {
		s.conn = nil
	}
	s.state = StateDisconnected
}
