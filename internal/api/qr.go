package api

import (
	"net/http"

	qr "github.com/skip2/go-qrcode"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
)

const qrSize = 256

// ShareQR handles GET /cards/current/share/qr: a PNG QR code of the
// play-mode share URL, for scanning a card onto another device.
func (h *Handler) ShareQR(w http.ResponseWriter, _ *http.Request) {
	c := h.svc.Current()
	if c == nil {
		writeError(w, apperr.ErrNoCard)
		return
	}
	link, err := h.codec.ShareURL(c, true)
	if err != nil {
		writeError(w, err)
		return
	}
	png, err := qr.Encode(link, qr.Medium, qrSize)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
