package live

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>didact live</title>
</head>
<body>
<div id="root">%s</div>
%s
</body>
</html>
`

// clientScript replaces the root markup on every snapshot and forwards
// events on elements marked with data-on-<event>.
const clientScript = `<script>
(function() {
    'use strict';

    var root = document.getElementById('root');
    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var ws = null;

    function pathOf(el) {
        var path = [];
        while (el && el !== root) {
            path.unshift(Array.prototype.indexOf.call(el.parentNode.childNodes, el));
            el = el.parentNode;
        }
        return path;
    }

    ['click', 'input', 'keydown'].forEach(function(type) {
        root.addEventListener(type, function(e) {
            var el = e.target.closest('[data-on-' + type + ']');
            if (!el || !ws || ws.readyState !== 1) {
                return;
            }
            var payload = e.target.value !== undefined ? e.target.value : null;
            ws.send(JSON.stringify({type: 'event', event: type, path: pathOf(el), payload: payload}));
        });
    });

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/ws');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            if (msg.type === 'snapshot') {
                root.innerHTML = msg.html;
            } else if (msg.type === 'error') {
                console.error('[didact]', msg.code, msg.error);
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    connect();
})();
</script>`
